package native

import "unsafe"

// Lib is the engine function table. Each field is bound to one exported
// engine symbol, either by Load (real library) or by an in-process engine.
//
// Functions that create resources return a zero Handle on failure. The
// table never checks return values itself; that is the caller's job.
type Lib struct {
	// Surface
	SurfaceNewRaster         func(info *ImageInfo, rowBytes uintptr, props Handle) Handle
	SurfaceUnref             func(s Handle)
	SurfaceGetCanvas         func(s Handle) Handle
	SurfaceNewImageSnapshot  func(s Handle) Handle
	SurfacePeekPixels        func(s Handle, pixmap Handle) bool

	// Canvas state
	CanvasSave           func(c Handle) int32
	CanvasSaveLayer      func(c Handle, bounds *Rect, paint Handle) int32
	CanvasRestore        func(c Handle)
	CanvasRestoreToCount func(c Handle, count int32)
	CanvasGetSaveCount   func(c Handle) int32

	// Canvas transform
	CanvasTranslate     func(c Handle, dx, dy float32)
	CanvasScale         func(c Handle, sx, sy float32)
	CanvasRotateDegrees func(c Handle, degrees float32)
	CanvasRotateRadians func(c Handle, radians float32)
	CanvasSkew          func(c Handle, sx, sy float32)
	CanvasConcat        func(c Handle, m *Matrix44)
	CanvasSetMatrix     func(c Handle, m *Matrix44)
	CanvasGetMatrix     func(c Handle, m *Matrix44)
	CanvasResetMatrix   func(c Handle)

	// Canvas clip
	CanvasClipRectWithOperation func(c Handle, r *Rect, op ClipOp, antialias bool)
	CanvasClipPathWithOperation func(c Handle, path Handle, op ClipOp, antialias bool)

	// Canvas draw
	CanvasDrawPaint      func(c Handle, paint Handle)
	CanvasDrawRect       func(c Handle, r *Rect, paint Handle)
	CanvasDrawRoundRect  func(c Handle, r *Rect, rx, ry float32, paint Handle)
	CanvasDrawCircle     func(c Handle, cx, cy, radius float32, paint Handle)
	CanvasDrawOval       func(c Handle, r *Rect, paint Handle)
	CanvasDrawPath       func(c Handle, path Handle, paint Handle)
	CanvasDrawImage      func(c Handle, image Handle, x, y float32, paint Handle)
	CanvasDrawImageRect  func(c Handle, image Handle, src, dst *Rect, paint Handle)
	CanvasDrawLine       func(c Handle, x0, y0, x1, y1 float32, paint Handle)
	CanvasDrawPoint      func(c Handle, x, y float32, paint Handle)
	CanvasDrawSimpleText func(c Handle, text unsafe.Pointer, byteLength uintptr, enc TextEncoding, x, y float32, font Handle, paint Handle)
	CanvasDrawPicture    func(c Handle, picture Handle, m *Matrix, paint Handle)
	CanvasClear          func(c Handle, color Color)
	CanvasDrawColor      func(c Handle, color Color, mode BlendMode)

	// Paint
	PaintNew            func() Handle
	PaintClone          func(p Handle) Handle
	PaintDelete         func(p Handle)
	PaintReset          func(p Handle)
	PaintIsAntialias    func(p Handle) bool
	PaintSetAntialias   func(p Handle, aa bool)
	PaintGetColor       func(p Handle) Color
	PaintSetColor       func(p Handle, color Color)
	PaintGetStyle       func(p Handle) PaintStyle
	PaintSetStyle       func(p Handle, style PaintStyle)
	PaintGetStrokeWidth func(p Handle) float32
	PaintSetStrokeWidth func(p Handle, width float32)
	PaintGetStrokeMiter func(p Handle) float32
	PaintSetStrokeMiter func(p Handle, miter float32)
	PaintGetStrokeCap   func(p Handle) StrokeCap
	PaintSetStrokeCap   func(p Handle, cap StrokeCap)
	PaintGetStrokeJoin  func(p Handle) StrokeJoin
	PaintSetStrokeJoin  func(p Handle, join StrokeJoin)
	PaintGetBlendMode   func(p Handle) BlendMode
	PaintSetBlendMode   func(p Handle, mode BlendMode)
	PaintGetShader      func(p Handle) Handle
	PaintSetShader      func(p Handle, shader Handle)
	PaintSetMaskFilter  func(p Handle, filter Handle)

	// Mask filter
	MaskFilterNewBlur func(style BlurStyle, sigma float32) Handle
	MaskFilterUnref   func(f Handle)

	// Path
	PathNew           func() Handle
	PathClone         func(p Handle) Handle
	PathDelete        func(p Handle)
	PathReset         func(p Handle)
	PathMoveTo        func(p Handle, x, y float32)
	PathLineTo        func(p Handle, x, y float32)
	PathQuadTo        func(p Handle, x0, y0, x1, y1 float32)
	PathConicTo       func(p Handle, x0, y0, x1, y1, w float32)
	PathCubicTo       func(p Handle, x0, y0, x1, y1, x2, y2 float32)
	PathArcTo         func(p Handle, rx, ry, xAxisRotate float32, largeArc int32, sweep PathDirection, x, y float32)
	PathArcToWithOval func(p Handle, oval *Rect, startAngle, sweepAngle float32, forceMoveTo bool)
	PathClose         func(p Handle)
	PathAddRect       func(p Handle, r *Rect, dir PathDirection)
	PathAddOval       func(p Handle, r *Rect, dir PathDirection)
	PathAddCircle     func(p Handle, cx, cy, radius float32, dir PathDirection)
	PathAddArc        func(p Handle, oval *Rect, startAngle, sweepAngle float32)
	PathAddPath       func(p Handle, other Handle, mode int32)
	PathAddPathOffset func(p Handle, other Handle, dx, dy float32, mode int32)
	PathAddPathMatrix func(p Handle, other Handle, m *Matrix, mode int32)
	PathGetFillType   func(p Handle) FillType
	PathSetFillType   func(p Handle, ft FillType)
	PathGetBounds     func(p Handle, r *Rect)
	PathContains      func(p Handle, x, y float32) bool
	PathTransform     func(p Handle, m *Matrix)
	PathCountPoints   func(p Handle) int32
	PathCountVerbs    func(p Handle) int32

	// Image
	ImageUnref          func(i Handle)
	ImageGetWidth       func(i Handle) int32
	ImageGetHeight      func(i Handle) int32
	ImageGetUniqueID    func(i Handle) uint32
	ImageNewFromEncoded func(data Handle) Handle
	ImagePeekPixels     func(i Handle, pixmap Handle) bool

	// Pixmap
	PixmapNew        func() Handle
	PixmapDestructor func(p Handle)
	PixmapGetInfo    func(p Handle, info *ImageInfo)

	// Encoders
	PNGEncoderEncode  func(stream Handle, pixmap Handle, opts *PNGEncoderOptions) bool
	JPEGEncoderEncode func(stream Handle, pixmap Handle, opts *JPEGEncoderOptions) bool
	WebPEncoderEncode func(stream Handle, pixmap Handle, opts *WebPEncoderOptions) bool

	// Data
	DataNewWithCopy func(src unsafe.Pointer, length uintptr) Handle
	DataNewFromFile func(path string) Handle
	DataUnref       func(d Handle)
	DataGetSize     func(d Handle) uintptr
	DataGetData     func(d Handle) unsafe.Pointer

	// Streams
	DynamicMemoryWStreamNew          func() Handle
	DynamicMemoryWStreamDestroy      func(s Handle)
	DynamicMemoryWStreamDetachAsData func(s Handle) Handle
	FileWStreamNew                   func(path string) Handle
	FileWStreamDestroy               func(s Handle)

	// Typeface
	TypefaceCreateFromName func(name string, style Handle) Handle
	TypefaceCreateFromFile func(path string, index int32) Handle
	TypefaceCreateDefault  func() Handle
	TypefaceUnref          func(t Handle)
	FontStyleNew           func(weight, width int32, slant FontSlant) Handle
	FontStyleDelete        func(s Handle)

	// Font
	FontNew           func() Handle
	FontNewWithValues func(typeface Handle, size, scaleX, skewX float32) Handle
	FontDelete        func(f Handle)
	FontSetTypeface   func(f Handle, typeface Handle)
	FontGetTypeface   func(f Handle) Handle
	FontSetSize       func(f Handle, size float32)
	FontGetSize       func(f Handle) float32
	FontGetMetrics    func(f Handle, m *FontMetrics) float32
	FontMeasureText   func(f Handle, text unsafe.Pointer, byteLength uintptr, enc TextEncoding, bounds *Rect, paint Handle) float32

	// Shader
	ShaderUnref             func(s Handle)
	ShaderNewLinearGradient func(points *Point, colors *Color, positions *float32, count int32, mode TileMode, local *Matrix) Handle
	ShaderNewRadialGradient func(center *Point, radius float32, colors *Color, positions *float32, count int32, mode TileMode, local *Matrix) Handle
	ShaderNewSweepGradient  func(center *Point, colors *Color, positions *float32, count int32, mode TileMode, startAngle, endAngle float32, local *Matrix) Handle

	// Document
	DocumentUnref             func(d Handle)
	DocumentCreatePDFFromStream func(stream Handle) Handle
	DocumentBeginPage         func(d Handle, width, height float32, content *Rect) Handle
	DocumentEndPage           func(d Handle)
	DocumentClose             func(d Handle)
	DocumentAbort             func(d Handle)

	// Picture recorder
	PictureRecorderNew             func() Handle
	PictureRecorderDelete          func(r Handle)
	PictureRecorderBeginRecording  func(r Handle, bounds *Rect) Handle
	PictureRecorderEndRecording    func(r Handle) Handle
	PictureGetRecordingCanvas      func(r Handle) Handle

	// Picture
	PictureUnref                func(p Handle)
	PictureGetUniqueID          func(p Handle) uint32
	PictureGetCullRect          func(p Handle, r *Rect)
	PicturePlayback             func(p Handle, c Handle)
	PictureSerializeToData      func(p Handle) Handle
	PictureDeserializeFromData  func(d Handle) Handle
	PictureApproximateOpCount   func(p Handle, nested bool) int32
	PictureApproximateBytesUsed func(p Handle) uintptr
}

// symbol pairs a Lib field with the engine symbol it is bound to.
type symbol struct {
	fn   any
	name string
}

// symbols lists every Lib field with its engine symbol name.
func (l *Lib) symbols() []symbol {
	return []symbol{
		{&l.SurfaceNewRaster, "sk_surface_new_raster"},
		{&l.SurfaceUnref, "sk_surface_unref"},
		{&l.SurfaceGetCanvas, "sk_surface_get_canvas"},
		{&l.SurfaceNewImageSnapshot, "sk_surface_new_image_snapshot"},
		{&l.SurfacePeekPixels, "sk_surface_peek_pixels"},

		{&l.CanvasSave, "sk_canvas_save"},
		{&l.CanvasSaveLayer, "sk_canvas_save_layer"},
		{&l.CanvasRestore, "sk_canvas_restore"},
		{&l.CanvasRestoreToCount, "sk_canvas_restore_to_count"},
		{&l.CanvasGetSaveCount, "sk_canvas_get_save_count"},
		{&l.CanvasTranslate, "sk_canvas_translate"},
		{&l.CanvasScale, "sk_canvas_scale"},
		{&l.CanvasRotateDegrees, "sk_canvas_rotate_degrees"},
		{&l.CanvasRotateRadians, "sk_canvas_rotate_radians"},
		{&l.CanvasSkew, "sk_canvas_skew"},
		{&l.CanvasConcat, "sk_canvas_concat"},
		{&l.CanvasSetMatrix, "sk_canvas_set_matrix"},
		{&l.CanvasGetMatrix, "sk_canvas_get_matrix"},
		{&l.CanvasResetMatrix, "sk_canvas_reset_matrix"},
		{&l.CanvasClipRectWithOperation, "sk_canvas_clip_rect_with_operation"},
		{&l.CanvasClipPathWithOperation, "sk_canvas_clip_path_with_operation"},
		{&l.CanvasDrawPaint, "sk_canvas_draw_paint"},
		{&l.CanvasDrawRect, "sk_canvas_draw_rect"},
		{&l.CanvasDrawRoundRect, "sk_canvas_draw_round_rect"},
		{&l.CanvasDrawCircle, "sk_canvas_draw_circle"},
		{&l.CanvasDrawOval, "sk_canvas_draw_oval"},
		{&l.CanvasDrawPath, "sk_canvas_draw_path"},
		{&l.CanvasDrawImage, "sk_canvas_draw_image"},
		{&l.CanvasDrawImageRect, "sk_canvas_draw_image_rect"},
		{&l.CanvasDrawLine, "sk_canvas_draw_line"},
		{&l.CanvasDrawPoint, "sk_canvas_draw_point"},
		{&l.CanvasDrawSimpleText, "sk_canvas_draw_simple_text"},
		{&l.CanvasDrawPicture, "sk_canvas_draw_picture"},
		{&l.CanvasClear, "sk_canvas_clear"},
		{&l.CanvasDrawColor, "sk_canvas_draw_color"},

		{&l.PaintNew, "sk_paint_new"},
		{&l.PaintClone, "sk_paint_clone"},
		{&l.PaintDelete, "sk_paint_delete"},
		{&l.PaintReset, "sk_paint_reset"},
		{&l.PaintIsAntialias, "sk_paint_is_antialias"},
		{&l.PaintSetAntialias, "sk_paint_set_antialias"},
		{&l.PaintGetColor, "sk_paint_get_color"},
		{&l.PaintSetColor, "sk_paint_set_color"},
		{&l.PaintGetStyle, "sk_paint_get_style"},
		{&l.PaintSetStyle, "sk_paint_set_style"},
		{&l.PaintGetStrokeWidth, "sk_paint_get_stroke_width"},
		{&l.PaintSetStrokeWidth, "sk_paint_set_stroke_width"},
		{&l.PaintGetStrokeMiter, "sk_paint_get_stroke_miter"},
		{&l.PaintSetStrokeMiter, "sk_paint_set_stroke_miter"},
		{&l.PaintGetStrokeCap, "sk_paint_get_stroke_cap"},
		{&l.PaintSetStrokeCap, "sk_paint_set_stroke_cap"},
		{&l.PaintGetStrokeJoin, "sk_paint_get_stroke_join"},
		{&l.PaintSetStrokeJoin, "sk_paint_set_stroke_join"},
		{&l.PaintGetBlendMode, "sk_paint_get_blendmode"},
		{&l.PaintSetBlendMode, "sk_paint_set_blendmode"},
		{&l.PaintGetShader, "sk_paint_get_shader"},
		{&l.PaintSetShader, "sk_paint_set_shader"},
		{&l.PaintSetMaskFilter, "sk_paint_set_maskfilter"},
		{&l.MaskFilterNewBlur, "sk_maskfilter_new_blur"},
		{&l.MaskFilterUnref, "sk_maskfilter_unref"},

		{&l.PathNew, "sk_path_new"},
		{&l.PathClone, "sk_path_clone"},
		{&l.PathDelete, "sk_path_delete"},
		{&l.PathReset, "sk_path_reset"},
		{&l.PathMoveTo, "sk_path_move_to"},
		{&l.PathLineTo, "sk_path_line_to"},
		{&l.PathQuadTo, "sk_path_quad_to"},
		{&l.PathConicTo, "sk_path_conic_to"},
		{&l.PathCubicTo, "sk_path_cubic_to"},
		{&l.PathArcTo, "sk_path_arc_to"},
		{&l.PathArcToWithOval, "sk_path_arc_to_with_oval"},
		{&l.PathClose, "sk_path_close"},
		{&l.PathAddRect, "sk_path_add_rect"},
		{&l.PathAddOval, "sk_path_add_oval"},
		{&l.PathAddCircle, "sk_path_add_circle"},
		{&l.PathAddArc, "sk_path_add_arc"},
		{&l.PathAddPath, "sk_path_add_path"},
		{&l.PathAddPathOffset, "sk_path_add_path_offset"},
		{&l.PathAddPathMatrix, "sk_path_add_path_matrix"},
		{&l.PathGetFillType, "sk_path_get_filltype"},
		{&l.PathSetFillType, "sk_path_set_filltype"},
		{&l.PathGetBounds, "sk_path_get_bounds"},
		{&l.PathContains, "sk_path_contains"},
		{&l.PathTransform, "sk_path_transform"},
		{&l.PathCountPoints, "sk_path_count_points"},
		{&l.PathCountVerbs, "sk_path_count_verbs"},

		{&l.ImageUnref, "sk_image_unref"},
		{&l.ImageGetWidth, "sk_image_get_width"},
		{&l.ImageGetHeight, "sk_image_get_height"},
		{&l.ImageGetUniqueID, "sk_image_get_unique_id"},
		{&l.ImageNewFromEncoded, "sk_image_new_from_encoded"},
		{&l.ImagePeekPixels, "sk_image_peek_pixels"},
		{&l.PixmapNew, "sk_pixmap_new"},
		{&l.PixmapDestructor, "sk_pixmap_destructor"},
		{&l.PixmapGetInfo, "sk_pixmap_get_info"},
		{&l.PNGEncoderEncode, "sk_pngencoder_encode"},
		{&l.JPEGEncoderEncode, "sk_jpegencoder_encode"},
		{&l.WebPEncoderEncode, "sk_webpencoder_encode"},

		{&l.DataNewWithCopy, "sk_data_new_with_copy"},
		{&l.DataNewFromFile, "sk_data_new_from_file"},
		{&l.DataUnref, "sk_data_unref"},
		{&l.DataGetSize, "sk_data_get_size"},
		{&l.DataGetData, "sk_data_get_data"},
		{&l.DynamicMemoryWStreamNew, "sk_dynamicmemorywstream_new"},
		{&l.DynamicMemoryWStreamDestroy, "sk_dynamicmemorywstream_destroy"},
		{&l.DynamicMemoryWStreamDetachAsData, "sk_dynamicmemorywstream_detach_as_data"},
		{&l.FileWStreamNew, "sk_filewstream_new"},
		{&l.FileWStreamDestroy, "sk_filewstream_destroy"},

		{&l.TypefaceCreateFromName, "sk_typeface_create_from_name"},
		{&l.TypefaceCreateFromFile, "sk_typeface_create_from_file"},
		{&l.TypefaceCreateDefault, "sk_typeface_create_default"},
		{&l.TypefaceUnref, "sk_typeface_unref"},
		{&l.FontStyleNew, "sk_fontstyle_new"},
		{&l.FontStyleDelete, "sk_fontstyle_delete"},
		{&l.FontNew, "sk_font_new"},
		{&l.FontNewWithValues, "sk_font_new_with_values"},
		{&l.FontDelete, "sk_font_delete"},
		{&l.FontSetTypeface, "sk_font_set_typeface"},
		{&l.FontGetTypeface, "sk_font_get_typeface"},
		{&l.FontSetSize, "sk_font_set_size"},
		{&l.FontGetSize, "sk_font_get_size"},
		{&l.FontGetMetrics, "sk_font_get_metrics"},
		{&l.FontMeasureText, "sk_font_measure_text"},

		{&l.ShaderUnref, "sk_shader_unref"},
		{&l.ShaderNewLinearGradient, "sk_shader_new_linear_gradient"},
		{&l.ShaderNewRadialGradient, "sk_shader_new_radial_gradient"},
		{&l.ShaderNewSweepGradient, "sk_shader_new_sweep_gradient"},

		{&l.DocumentUnref, "sk_document_unref"},
		{&l.DocumentCreatePDFFromStream, "sk_document_create_pdf_from_stream"},
		{&l.DocumentBeginPage, "sk_document_begin_page"},
		{&l.DocumentEndPage, "sk_document_end_page"},
		{&l.DocumentClose, "sk_document_close"},
		{&l.DocumentAbort, "sk_document_abort"},

		{&l.PictureRecorderNew, "sk_picture_recorder_new"},
		{&l.PictureRecorderDelete, "sk_picture_recorder_delete"},
		{&l.PictureRecorderBeginRecording, "sk_picture_recorder_begin_recording"},
		{&l.PictureRecorderEndRecording, "sk_picture_recorder_end_recording"},
		{&l.PictureGetRecordingCanvas, "sk_picture_get_recording_canvas"},
		{&l.PictureUnref, "sk_picture_unref"},
		{&l.PictureGetUniqueID, "sk_picture_get_unique_id"},
		{&l.PictureGetCullRect, "sk_picture_get_cull_rect"},
		{&l.PicturePlayback, "sk_picture_playback"},
		{&l.PictureSerializeToData, "sk_picture_serialize_to_data"},
		{&l.PictureDeserializeFromData, "sk_picture_deserialize_from_data"},
		{&l.PictureApproximateOpCount, "sk_picture_approximate_op_count"},
		{&l.PictureApproximateBytesUsed, "sk_picture_approximate_bytes_used"},
	}
}

// Missing returns the symbol names whose Lib field is still nil.
// An in-process engine uses it to verify it bound the whole table.
func (l *Lib) Missing() []string {
	var names []string
	for _, s := range l.symbols() {
		if isNilFunc(s.fn) {
			names = append(names, s.name)
		}
	}
	return names
}
