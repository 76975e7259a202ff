package imageops

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// GrayscaleOptions 灰度转换选项
type GrayscaleOptions struct {
	// 输出文件名后缀，默认 "_bw"
	Suffix string
	// JPEG 输出质量 (1-100)
	JPEGQuality int
	// 输出文件已存在时是否改名而不是覆盖
	ResolveCollisions bool
}

// DefaultGrayscaleOptions 默认灰度转换选项
func DefaultGrayscaleOptions() GrayscaleOptions {
	return GrayscaleOptions{
		Suffix:      "_bw",
		JPEGQuality: 95,
	}
}

// ImageTransform 灰度转换器
type ImageTransform struct {
	validator *PathValidator
	resolver  *CollisionResolver
	atomicOps *AtomicFileOperations
	options   GrayscaleOptions
	logger    *zap.Logger
}

// NewImageTransform 创建灰度转换器
func NewImageTransform(validator *PathValidator, resolver *CollisionResolver, atomicOps *AtomicFileOperations, options GrayscaleOptions, logger *zap.Logger) *ImageTransform {
	if options.Suffix == "" {
		options.Suffix = "_bw"
	}
	if options.JPEGQuality < 1 || options.JPEGQuality > 100 {
		options.JPEGQuality = 95
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageTransform{
		validator: validator,
		resolver:  resolver,
		atomicOps: atomicOps,
		options:   options,
		logger:    logger,
	}
}

// OutputPath 计算 {name}{suffix}{ext}，与源文件同目录
func (it *ImageTransform) OutputPath(sourcePath string) string {
	name, ext := splitName(filepath.Base(sourcePath))
	return filepath.Join(filepath.Dir(sourcePath), name+it.options.Suffix+ext)
}

// ToGrayscale 将图片转换为单通道灰度图并写到源文件旁边
func (it *ImageTransform) ToGrayscale(sourcePath string) (string, error) {
	const op = "grayscale"

	result := it.validator.Validate(sourcePath)
	if !result.Valid() {
		return "", validationError(op, sourcePath, result)
	}

	outputPath := it.OutputPath(sourcePath)
	if it.options.ResolveCollisions {
		resolved, err := it.resolver.Resolve(filepath.Dir(outputPath), filepath.Base(outputPath))
		if err != nil {
			return "", err
		}
		outputPath = resolved
	}

	src, err := decodeImage(sourcePath)
	if err != nil {
		return "", err
	}

	gray := toGray(src)

	perm := os.FileMode(0o644)
	if info, err := os.Stat(sourcePath); err == nil {
		perm = info.Mode().Perm()
	}

	err = it.atomicOps.WriteFile(op, outputPath, perm, KindCodecError, func(w io.Writer) error {
		return encodeImage(w, gray, result.Extension, it.options.JPEGQuality)
	})
	if err != nil {
		return "", err
	}

	it.logger.Debug("灰度图已写入",
		zap.String("source", sourcePath),
		zap.String("output", outputPath),
		zap.Int("width", gray.Bounds().Dx()),
		zap.Int("height", gray.Bounds().Dy()))

	return outputPath, nil
}

// decodeImage 打开并解码图片
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newOpError(classifyIOError(err, KindCodecError), "decode", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, newOpError(KindCodecError, "decode", path, err)
	}
	return img, nil
}

// toGray 按 color.GrayModel 计算亮度，得到 8 位单通道图像
func toGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	xdraw.Draw(dst, bounds, src, bounds.Min, xdraw.Src)
	return dst
}

// encodeImage 按扩展名选择编码器
func encodeImage(w io.Writer, img image.Image, ext string, jpegQuality int) error {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case ".bmp":
		return bmp.Encode(w, img)
	case ".png":
		return png.Encode(w, img)
	default:
		return fmt.Errorf("no encoder for extension %q", ext)
	}
}
