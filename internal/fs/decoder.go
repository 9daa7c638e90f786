package fs

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sikt-nva/fs-courses-api/internal/models"
	"github.com/sikt-nva/fs-courses-api/pkg/config"
)

// RecordDecoder turns one FS record into a Course.
type RecordDecoder interface {
	Decode(rec Record) (models.Course, error)
	// QueryParams are extra query parameters the FS request needs for this format.
	QueryParams() url.Values
}

// StructuredDecoder reads the nested emne/semester fields.
type StructuredDecoder struct{}

// Decode implements RecordDecoder.
func (StructuredDecoder) Decode(rec Record) (models.Course, error) {
	id := rec.ID
	if id == nil || id.Course == nil || id.Semester == nil {
		return models.Course{}, fmt.Errorf("%w: missing id.emne or id.semester", ErrMalformedRecord)
	}
	code := strings.TrimSpace(id.Course.Code)
	term := strings.TrimSpace(id.Semester.Term)
	if code == "" || term == "" || id.Semester.Year <= 0 {
		return models.Course{}, fmt.Errorf("%w: incomplete id %q/%q/%d", ErrMalformedRecord, code, term, id.Semester.Year)
	}
	return models.Course{Code: code, Term: term, Year: id.Semester.Year}, nil
}

// QueryParams implements RecordDecoder.
func (StructuredDecoder) QueryParams() url.Values {
	return url.Values{"dbId": []string{"true"}}
}

const (
	encodedPathMinParts = 6
	encodedPathCode     = 1
	encodedPathYear     = 3
	encodedPathTerm     = 4
)

// EncodedPathDecoder reads the comma separated key at the end of href, e.g.
// ".../undervisning/215,ABC123,1,2022,H%C3%98ST,1".
type EncodedPathDecoder struct{}

// Decode implements RecordDecoder.
func (EncodedPathDecoder) Decode(rec Record) (models.Course, error) {
	last := rec.Href[strings.LastIndex(rec.Href, "/")+1:]
	parts := strings.Split(last, ",")
	if len(parts) < encodedPathMinParts {
		return models.Course{}, fmt.Errorf("%w: unable to split href %q in parts", ErrMalformedRecord, rec.Href)
	}

	code, err := url.QueryUnescape(parts[encodedPathCode])
	if err != nil {
		return models.Course{}, fmt.Errorf("%w: course code in %q: %v", ErrMalformedRecord, rec.Href, err)
	}
	term, err := url.QueryUnescape(parts[encodedPathTerm])
	if err != nil {
		return models.Course{}, fmt.Errorf("%w: term in %q: %v", ErrMalformedRecord, rec.Href, err)
	}
	year, err := strconv.Atoi(parts[encodedPathYear])
	if err != nil {
		return models.Course{}, fmt.Errorf("%w: year in %q: %v", ErrMalformedRecord, rec.Href, err)
	}
	if code == "" || term == "" || year <= 0 {
		return models.Course{}, fmt.Errorf("%w: incomplete key in %q", ErrMalformedRecord, rec.Href)
	}
	return models.Course{Code: code, Term: term, Year: year}, nil
}

// QueryParams implements RecordDecoder.
func (EncodedPathDecoder) QueryParams() url.Values {
	return url.Values{}
}

// DecoderFor returns the decoder for a configured record format.
func DecoderFor(format string) (RecordDecoder, error) {
	switch format {
	case "", config.RecordFormatStructured:
		return StructuredDecoder{}, nil
	case config.RecordFormatEncodedPath:
		return EncodedPathDecoder{}, nil
	default:
		return nil, fmt.Errorf("unknown FS record format %q", format)
	}
}
