package service

import (
	"archive/zip"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/gen2brain/go-fitz"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	_ "image/gif"

	"pdf-toolbox/internal/domain"
	apperrors "pdf-toolbox/pkg/errors"
)

// pageSizes maps page-size keywords to portrait width/height in points.
var pageSizes = map[string][2]float64{
	"a4":     {595, 842},
	"letter": {612, 792},
	"legal":  {612, 1008},
	"a3":     {842, 1191},
	"a5":     {420, 595},
}

// imageQualities maps quality keywords to a DPI-equivalent rendering scale,
// which doubles as the lossy encoder quality.
var imageQualities = map[string]int{
	"low":    60,
	"medium": 80,
	"high":   100,
}

// pageMargin is the fixed margin, in points, around images placed on a page.
const pageMargin = 40.0

// ConvertService implements the image↔PDF conversions. Implements
// domain.Converter.
type ConvertService struct {
	store          domain.ArtifactStore
	scheduler      domain.CleanupScheduler
	batchRetention time.Duration
	logger         domain.Logger
}

// NewConvertService creates a new conversion service instance
func NewConvertService(
	store domain.ArtifactStore,
	scheduler domain.CleanupScheduler,
	batchRetention time.Duration,
	logger domain.Logger,
) *ConvertService {
	return &ConvertService{
		store:          store,
		scheduler:      scheduler,
		batchRetention: batchRetention,
		logger:         logger,
	}
}

// ImagesToPDF places each image on its own page of the requested size and
// orientation, scaled down (never up) to fit inside the margin and centered.
// An image that fails to decode is skipped; the request only fails when no
// image could be placed. The output is retained permanently.
func (s *ConvertService) ImagesToPDF(paths []string, pageSize, orientation string) (*domain.ImagesToPDFOutput, error) {
	pageSize = strings.ToLower(pageSize)
	dims, ok := pageSizes[pageSize]
	if !ok {
		pageSize = "a4"
		dims = pageSizes[pageSize]
	}
	orientation = strings.ToLower(orientation)
	if orientation != "landscape" {
		orientation = "portrait"
	}
	pageW, pageH := dims[0], dims[1]
	if orientation == "landscape" {
		pageW, pageH = pageH, pageW
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})

	placed := 0
	for i, path := range paths {
		if err := s.addImagePage(pdf, path, i, pageW, pageH); err != nil {
			s.logger.Warn("Skipping image", "path", filepath.Base(path), "error", err)
			continue
		}
		placed++
	}
	if placed == 0 {
		return nil, apperrors.NewProcessingError("no image could be converted to a PDF page", nil)
	}

	name := fmt.Sprintf("images-to-pdf-%d.pdf", time.Now().UnixMilli())
	outPath := filepath.Join(s.store.Root(), name)
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		if delErr := s.store.Delete(name); delErr != nil {
			s.logger.Warn("Failed to remove partial PDF output", "name", name, "error", delErr)
		}
		return nil, apperrors.NewProcessingError("failed to write PDF", err)
	}

	s.logger.Info("Converted images to PDF", "images", placed, "pageSize", pageSize, "orientation", orientation)
	return &domain.ImagesToPDFOutput{
		Name:        name,
		Path:        outPath,
		URL:         "/uploads/" + name,
		TotalPages:  placed,
		FileCount:   len(paths),
		PageSize:    pageSize,
		Orientation: orientation,
	}, nil
}

func (s *ConvertService) addImagePage(pdf *gofpdf.Fpdf, path string, idx int, pageW, pageH float64) error {
	var imgType string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		imgType = "JPG"
	case ".png":
		imgType = "PNG"
	case ".gif":
		imgType = "GIF"
	default:
		return fmt.Errorf("unsupported image type %q", filepath.Ext(path))
	}

	// Decode the header first: a corrupt image must not poison the
	// document's sticky error state.
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	cfg, _, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	imgW, imgH := float64(cfg.Width), float64(cfg.Height)
	availW, availH := pageW-2*pageMargin, pageH-2*pageMargin
	scale := availW / imgW
	if h := availH / imgH; h < scale {
		scale = h
	}
	if scale > 1 {
		// Never upscale.
		scale = 1
	}
	drawW, drawH := imgW*scale, imgH*scale
	x := (pageW - drawW) / 2
	y := (pageH - drawH) / 2

	f, err = os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	opts := gofpdf.ImageOptions{ImageType: imgType}
	imgName := fmt.Sprintf("upload-%d", idx)
	pdf.RegisterImageOptionsReader(imgName, opts, f)
	pdf.AddPage()
	pdf.ImageOptions(imgName, x, y, drawW, drawH, false, opts, 0, "")
	if pdf.Err() {
		return pdf.Error()
	}
	return nil
}

// PDFToImages rasterizes each page of a PDF into the requested format and
// quality, grouped in a timestamped batch directory alongside a zip of the
// whole set. Batch and zip are scheduled for deletion together. If no page
// rasterizes, pages are re-rendered from their extracted text alone and the
// result is marked as having lost formatting.
func (s *ConvertService) PDFToImages(path, format, quality string) (*domain.PDFToImagesOutput, error) {
	format = strings.ToLower(format)
	switch format {
	case "png", "jpeg", "webp":
	case "":
		format = "png"
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported image format %q", format))
	}
	scale, ok := imageQualities[strings.ToLower(quality)]
	if !ok {
		scale = imageQualities["medium"]
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, apperrors.NewProcessingError("failed to open PDF", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	if numPages == 0 {
		return nil, apperrors.NewValidationError("PDF has no pages")
	}

	ts := time.Now().UnixMilli()
	batchName := fmt.Sprintf("pdf-images-%d", ts)
	batchPath, err := s.store.MkdirBatch(batchName)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to create batch directory", err)
	}

	images := make([]domain.ImageArtifact, 0, numPages)
	for pageNum := 0; pageNum < numPages; pageNum++ {
		img, err := doc.ImageDPI(pageNum, float64(scale))
		if err != nil {
			s.logger.Warn("Failed to rasterize page", "page", pageNum+1, "total", numPages, "error", err)
			continue
		}
		artifact, err := s.writePageImage(img, batchName, batchPath, pageNum+1, ts, format, scale)
		if err != nil {
			s.logger.Warn("Failed to encode page image", "page", pageNum+1, "error", err)
			continue
		}
		images = append(images, artifact)
	}

	note := ""
	if len(images) == 0 {
		// Degraded fallback: draw each page's extracted text onto a blank
		// canvas so the caller still gets one image per page.
		images = s.renderTextPages(doc, batchName, batchPath, ts, format, scale)
		note = "Rasterization failed; pages were rendered from extracted text and formatting was lost."
	}
	if len(images) == 0 {
		s.scheduler.ScheduleDelete(batchPath, 0)
		return nil, apperrors.NewProcessingError("failed to convert PDF pages to images", nil)
	}

	zipName := batchName + ".zip"
	zipPath, err := s.zipBatch(batchPath, zipName)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to bundle images", err)
	}

	// Bulk artifacts: keep for a bounded time, then remove batch and zip together.
	s.scheduler.ScheduleDelete(batchPath, s.batchRetention)
	s.scheduler.ScheduleDelete(zipPath, s.batchRetention)

	s.logger.Info("Converted PDF to images", "pages", len(images), "format", format, "quality", quality)
	return &domain.PDFToImagesOutput{
		Images:  images,
		ZipName: zipName,
		ZipURL:  "/uploads/" + zipName,
		Note:    note,
	}, nil
}

func (s *ConvertService) writePageImage(img image.Image, batchName, batchPath string, pageNum int, ts int64, format string, quality int) (domain.ImageArtifact, error) {
	name := fmt.Sprintf("pdf-image-page-%d-%d.%s", pageNum, ts, format)
	outPath := filepath.Join(batchPath, name)
	f, err := os.Create(outPath)
	if err != nil {
		return domain.ImageArtifact{}, err
	}
	switch format {
	case "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	case "webp":
		err = webp.Encode(f, img, &webp.Options{Quality: float32(quality)})
	default:
		err = png.Encode(f, img)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(outPath)
		return domain.ImageArtifact{}, err
	}
	info, err := os.Stat(outPath)
	if err != nil {
		return domain.ImageArtifact{}, err
	}
	return domain.ImageArtifact{
		Filename:   name,
		URL:        "/uploads/" + batchName + "/" + name,
		PageNumber: pageNum,
		Size:       info.Size(),
	}, nil
}

func (s *ConvertService) renderTextPages(doc *fitz.Document, batchName, batchPath string, ts int64, format string, quality int) []domain.ImageArtifact {
	const lineHeight = 16
	pageW := int(595 * float64(quality) / 72)
	pageH := int(842 * float64(quality) / 72)

	images := make([]domain.ImageArtifact, 0, doc.NumPage())
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		text, err := doc.Text(pageNum)
		if err != nil {
			s.logger.Warn("Text fallback failed for page", "page", pageNum+1, "error", err)
			continue
		}

		canvas := image.NewRGBA(image.Rect(0, 0, pageW, pageH))
		for i := range canvas.Pix {
			canvas.Pix[i] = 0xff
		}
		drawer := &font.Drawer{
			Dst:  canvas,
			Src:  image.Black,
			Face: basicfont.Face7x13,
		}
		y := 2 * lineHeight
		for _, line := range strings.Split(text, "\n") {
			drawer.Dot = fixed.P(lineHeight, y)
			drawer.DrawString(line)
			y += lineHeight
			if y > pageH-lineHeight {
				break
			}
		}

		artifact, err := s.writePageImage(canvas, batchName, batchPath, pageNum+1, ts, format, quality)
		if err != nil {
			s.logger.Warn("Failed to write text-rendered page", "page", pageNum+1, "error", err)
			continue
		}
		images = append(images, artifact)
	}
	return images
}

func (s *ConvertService) zipBatch(batchPath, zipName string) (string, error) {
	zipPath := filepath.Join(s.store.Root(), zipName)
	f, err := os.Create(zipPath)
	if err != nil {
		return "", err
	}
	zw := zip.NewWriter(f)

	entries, err := os.ReadDir(batchPath)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			data, err := os.ReadFile(filepath.Join(batchPath, entry.Name()))
			if err != nil {
				// Tolerate concurrent disappearance.
				continue
			}
			w, werr := zw.Create(entry.Name())
			if werr != nil {
				err = werr
				break
			}
			if _, werr := w.Write(data); werr != nil {
				err = werr
				break
			}
		}
	}

	if closeErr := zw.Close(); err == nil {
		err = closeErr
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(zipPath)
		return "", err
	}
	return zipPath, nil
}
