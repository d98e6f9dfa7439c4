package presentation

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/gen2brain/go-fitz"
)

// DefaultDPI is the resolution PDF pages are rasterized at.
const DefaultDPI = 96

// ErrPageOutOfRange is returned when a page index is outside the deck.
var ErrPageOutOfRange = errors.New("page out of range")

// Deck is a source of slide images.
type Deck interface {
	PageCount() int
	RenderPage(index int) (image.Image, error)
	Close() error
}

// PDFDeck renders the pages of a PDF file.
type PDFDeck struct {
	mu   sync.Mutex
	doc  *fitz.Document
	path string
	dpi  float64
}

// OpenPDF opens the PDF at path. A non-positive dpi uses DefaultDPI.
func OpenPDF(path string, dpi float64) (*PDFDeck, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open deck %s: %w", path, err)
	}
	return &PDFDeck{doc: doc, path: path, dpi: dpi}, nil
}

func (d *PDFDeck) PageCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.NumPage()
}

// RenderPage rasterizes page index. Calls are serialized on the document.
func (d *PDFDeck) RenderPage(index int) (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= d.doc.NumPage() {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, index, d.doc.NumPage())
	}
	img, err := d.doc.ImageDPI(index, d.dpi)
	if err != nil {
		return nil, fmt.Errorf("render page %d of %s: %w", index, d.path, err)
	}
	return img, nil
}

func (d *PDFDeck) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Close()
}

// BlankDeck is a fixed number of plain slides, used when no deck file is
// given.
type BlankDeck struct {
	Pages  int
	Width  int
	Height int
	Color  color.RGBA
}

// NewBlankDeck returns a BlankDeck of pages 1280x720 slides.
func NewBlankDeck(pages int) *BlankDeck {
	return &BlankDeck{
		Pages:  pages,
		Width:  1280,
		Height: 720,
		Color:  color.RGBA{R: 32, G: 32, B: 40, A: 255},
	}
}

func (d *BlankDeck) PageCount() int {
	return d.Pages
}

func (d *BlankDeck) RenderPage(index int) (image.Image, error) {
	if index < 0 || index >= d.Pages {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, index, d.Pages)
	}
	img := image.NewRGBA(image.Rect(0, 0, d.Width, d.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: d.Color}, image.Point{}, draw.Src)
	return img, nil
}

func (d *BlankDeck) Close() error {
	return nil
}
