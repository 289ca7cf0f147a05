package raster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadASC parses an ESRI ASCII grid. Both xllcorner/yllcorner and
// xllcenter/yllcenter origins are accepted; a center origin is
// converted to the corner form. nodata_value defaults to
// DefaultNoData when absent.
func ReadASC(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}

	header := map[string]float64{}
	var pending string
	for {
		tok, ok := next()
		if !ok {
			return nil, fmt.Errorf("asc: unexpected end of header")
		}
		if !isHeaderKey(tok) {
			pending = tok
			break
		}
		val, ok := next()
		if !ok {
			return nil, fmt.Errorf("asc: header key %q has no value", tok)
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("asc: header %s: %w", strings.ToLower(tok), err)
		}
		header[strings.ToLower(tok)] = f
	}

	ncols := int(header["ncols"])
	nrows := int(header["nrows"])
	cellSize := header["cellsize"]
	if ncols <= 0 || nrows <= 0 {
		return nil, fmt.Errorf("asc: missing or invalid ncols/nrows")
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("asc: missing or invalid cellsize")
	}

	xll, xok := header["xllcorner"]
	yll, yok := header["yllcorner"]
	if !xok {
		if xc, ok := header["xllcenter"]; ok {
			xll, xok = xc-cellSize/2, true
		}
	}
	if !yok {
		if yc, ok := header["yllcenter"]; ok {
			yll, yok = yc-cellSize/2, true
		}
	}
	if !xok || !yok {
		return nil, fmt.Errorf("asc: missing grid origin (xllcorner/yllcorner)")
	}

	noData := float64(DefaultNoData)
	if v, ok := header["nodata_value"]; ok {
		noData = v
	}

	g, err := New(ncols, nrows, xll, yll, cellSize, noData)
	if err != nil {
		return nil, fmt.Errorf("asc: %w", err)
	}

	tok := pending
	ok := pending != ""
	for r := 0; r < nrows; r++ {
		for c := 0; c < ncols; c++ {
			if !ok {
				tok, ok = next()
				if !ok {
					return nil, fmt.Errorf("asc: expected %d values, got %d", ncols*nrows, r*ncols+c)
				}
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("asc: value at row %d col %d: %w", r, c, err)
			}
			g.SetZ(c, r, v)
			ok = false
		}
	}
	if tok, ok = next(); ok {
		return nil, fmt.Errorf("asc: trailing data after %d values", ncols*nrows)
	}
	return g, nil
}

// ReadASCFile reads an ESRI ASCII grid from disk.
func ReadASCFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raster: %w", err)
	}
	defer f.Close()
	g, err := ReadASC(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// WriteASC writes g in ESRI ASCII form, one grid row per line.
func WriteASC(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	cols, rows := g.Dims()
	xll, yll := g.Origin()
	fmt.Fprintf(bw, "ncols %d\n", cols)
	fmt.Fprintf(bw, "nrows %d\n", rows)
	fmt.Fprintf(bw, "xllcorner %g\n", xll)
	fmt.Fprintf(bw, "yllcorner %g\n", yll)
	fmt.Fprintf(bw, "cellsize %g\n", g.CellSize())
	fmt.Fprintf(bw, "nodata_value %g\n", g.NoData())
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.FormatFloat(g.Z(c, r), 'g', -1, 64)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteASCFile writes g to disk in ESRI ASCII form.
func WriteASCFile(path string, g *Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create raster: %w", err)
	}
	if err := WriteASC(f, g); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func isHeaderKey(tok string) bool {
	switch strings.ToLower(tok) {
	case "ncols", "nrows", "xllcorner", "yllcorner", "xllcenter", "yllcenter", "cellsize", "nodata_value":
		return true
	}
	return false
}
