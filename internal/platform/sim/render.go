package sim

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/mj1618/storeshots/internal/model"
	"github.com/mj1618/storeshots/internal/platform"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	textColor     = color.RGBA{R: 33, G: 33, B: 33, A: 255}
	buttonColor   = color.RGBA{R: 0, G: 122, B: 255, A: 255}
	disabledColor = color.RGBA{R: 174, G: 174, B: 178, A: 255}
	labelColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// renderPNG draws the element tree of a screen and encodes it as PNG. Each
// state gets its own pale background tint so screenshots of different
// screens differ even when their layouts match.
func renderPNG(state State, elements []model.Element, vp platform.Viewport) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background(state)), image.Point{}, draw.Src)

	for _, el := range model.FlattenElements(elements) {
		r := image.Rect(el.Bounds[0], el.Bounds[1], el.Bounds[0]+el.Bounds[2], el.Bounds[1]+el.Bounds[3])
		switch el.Role {
		case "btn":
			fill := buttonColor
			if !el.IsEnabled() {
				fill = disabledColor
			}
			draw.Draw(img, r, image.NewUniform(fill), image.Point{}, draw.Src)
			drawCentered(img, el.Title, r, labelColor)
		case "txt":
			drawCentered(img, el.Title, r, textColor)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

func background(state State) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(state))
	sum := h.Sum32()
	return color.RGBA{
		R: 215 + uint8(sum%40),
		G: 215 + uint8((sum>>8)%40),
		B: 215 + uint8((sum>>16)%40),
		A: 255,
	}
}

// drawCentered writes text centred in r using basicfont.Face7x13.
func drawCentered(img *image.RGBA, text string, r image.Rectangle, c color.Color) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(c), Face: face}
	width := d.MeasureString(text).Ceil()
	x := r.Min.X + (r.Dx()-width)/2
	y := r.Min.Y + (r.Dy()+face.Ascent-face.Descent)/2
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}
