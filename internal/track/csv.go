package track

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ayoisaiah/tracklog/internal/apperr"
)

const fieldsPerRecord = 4

var errMalformedRecord = &apperr.Error{
	Message: "malformed log record on line %d",
}

// EncodeRecord renders p as one CSV log line including the trailing newline.
// Fields are latitude, longitude, elevation (empty when unknown) and the
// UTC timestamp in seconds.
func EncodeRecord(p Point) []byte {
	var elevation string
	if p.Elevation != nil {
		elevation = formatFloat(*p.Elevation)
	}

	fields := []string{
		formatFloat(p.Lat),
		formatFloat(p.Lon),
		elevation,
		strconv.FormatInt(p.Timestamp, 10),
	}

	return []byte(strings.Join(fields, ",") + "\n")
}

// ParseLog reads every point from an append-only CSV log. Every record is
// written with a terminating newline, so a final line without one is a
// write cut short by a crash and is dropped even when it happens to parse.
// Any other malformed line fails the whole log.
func ParseLog(path string) ([]Point, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	body, tail := b, []byte(nil)

	if i := bytes.LastIndexByte(b, '\n'); i != len(b)-1 {
		body, tail = b[:i+1], b[i+1:]
	}

	points, err := decode(body)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(tail)) > 0 {
		slog.Warn(
			"dropping truncated log record",
			slog.String("path", path),
			slog.String("record", string(tail)),
		)
	}

	return points, nil
}

func decode(b []byte) ([]Point, error) {
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = fieldsPerRecord
	r.ReuseRecord = true

	var points []Point

	for line := 1; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return points, nil
		}

		if err != nil {
			return nil, errMalformedRecord.Fmt(line).Wrap(err)
		}

		p, err := parseRecord(record)
		if err != nil {
			return nil, errMalformedRecord.Fmt(line).Wrap(err)
		}

		points = append(points, p)
	}
}

func parseRecord(record []string) (Point, error) {
	var (
		p   Point
		err error
	)

	p.Lat, err = strconv.ParseFloat(record[0], 64)
	if err != nil {
		return p, err
	}

	p.Lon, err = strconv.ParseFloat(record[1], 64)
	if err != nil {
		return p, err
	}

	if record[2] != "" {
		elevation, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return p, err
		}

		p.Elevation = &elevation
	}

	p.Timestamp, err = strconv.ParseInt(record[3], 10, 64)

	return p, err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
