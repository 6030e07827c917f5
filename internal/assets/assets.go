// Package assets 提供棋子贴图（嵌入的 SVG，按需栅格化）和合成音效。
// 这里只产出 image.RGBA 与 PCM 字节，由 ui 包交给 ebiten。
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/draw"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed svg/*.svg
var svgFS embed.FS

type imgKey struct {
	name string
	w, h int
}

// 简单缓存，避免重复渲染 SVG
var (
	imgMu    sync.Mutex
	imgCache = map[imgKey]*image.RGBA{}
)

// Names of the embedded images.
const (
	BlackStone = "black_stone"
	WhiteStone = "white_stone"
	LastMarker = "last_marker"
)

// LoadImage 通过名称加载嵌入的 SVG（不含扩展名）并渲染为 w×h 像素。
// A size <= 0 keeps the aspect ratio of the other one, or the SVG's own size.
func LoadImage(name string, w, h int) (*image.RGBA, error) {
	key := imgKey{name, w, h}
	imgMu.Lock()
	defer imgMu.Unlock()
	if img, ok := imgCache[key]; ok {
		return img, nil
	}
	data, err := svgFS.ReadFile("svg/" + name + ".svg")
	if err != nil {
		return nil, fmt.Errorf("read embedded image %s: %w", name, err)
	}
	img, err := rasterizeSVG(data, w, h)
	if err != nil {
		return nil, fmt.Errorf("rasterize %s: %w", name, err)
	}
	imgCache[key] = img
	return img, nil
}

// 把 SVG 字节渲染为 RGBA
func rasterizeSVG(svgData []byte, targetW, targetH int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}
	vb := icon.ViewBox

	// 决定像素尺寸（保持比例）
	w := float64(targetW)
	h := float64(targetH)
	switch {
	case w <= 0 && h <= 0:
		w, h = vb.W, vb.H
	case w <= 0:
		w = h * vb.W / vb.H
	case h <= 0:
		h = w * vb.H / vb.W
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	icon.SetTarget(0, 0, w, h)

	dstW, dstH := int(w+0.5), int(h+0.5)
	rgba := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	// 透明底
	draw.Draw(rgba, rgba.Bounds(), image.Transparent, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(dstW, dstH, rgba, rgba.Bounds())
	dasher := rasterx.NewDasher(dstW, dstH, scanner)
	icon.Draw(dasher, 1.0)

	return rgba, nil
}
