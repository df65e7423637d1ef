package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
)

// rasterTool is the external converter used for PNG and PDF output.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
const rasterTool = "rsvg-convert"

// ToPNG converts an SVG document to PNG at the given scale factor
// (2.0 doubles the pixel resolution).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return convert(svg, "png", "-z", strconv.FormatFloat(scale, 'f', 2, 64))
}

// ToPDF converts an SVG document to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

func convert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath(rasterTool); err != nil {
		return nil, fmt.Errorf("%s export requires librsvg (%s not found in PATH)", format, rasterTool)
	}

	cmd := exec.Command(rasterTool, append([]string{"-f", format}, extraArgs...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", rasterTool, err, errBuf.String())
	}
	return out.Bytes(), nil
}
