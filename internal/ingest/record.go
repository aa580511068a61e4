// Package ingest turns directories of scraped tool JSON into stored tools.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Record is one scraped tool file. Numbers arrive as either JSON numbers or
// strings depending on the scraper that produced the file.
type Record struct {
	Name            string      `json:"name" validate:"required,max=200"`
	Description     string      `json:"description" validate:"required"`
	Website         string      `json:"website"`
	ActualURL       string      `json:"actual_url"`
	ImageURL        string      `json:"image_url"`
	Rating          flexString  `json:"rating"`
	RatingCount     flexString  `json:"rating_count"`
	WhatIs          string      `json:"what_is"`
	HowToUse        string      `json:"how_to_use"`
	ProductInfo     productInfo `json:"product_info"`
	Categories      []string    `json:"categories"`
	Tags            []string    `json:"tags"`
	CoreFeatures    []string    `json:"core_features"`
	UseCases        []string    `json:"use_cases"`
	MonthlyVisitors flexString  `json:"monthly_visitors"`
	AddedDate       string      `json:"added_date"`
	SEOTitle        string      `json:"seo_title"`
	SEODescription  string      `json:"seo_description"`
	Company         flexMap     `json:"company"`
	Links           flexMap     `json:"links"`
	Contact         flexMap     `json:"contact"`
	SocialMedia     flexMap     `json:"social_media"`
}

type productInfo struct {
	WhatIs   string `json:"what_is"`
	HowToUse string `json:"how_to_use"`
}

// flexString accepts a JSON string, number or null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(b))
	}
	*f = flexString(n.String())
	return nil
}

func (f flexString) Float() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(f)), 64)
	if err != nil {
		return 0
	}
	return v
}

func (f flexString) Int() int {
	return int(f.Float())
}

// flexMap flattens an object of scalars into strings; nested values are
// kept as their JSON text.
type flexMap map[string]string

func (m *flexMap) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		*m = nil
		return nil
	}
	out := make(flexMap, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = s
			continue
		}
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			continue
		}
		out[k] = string(v)
	}
	*m = out
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report JSON names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ErrInvalidRecord wraps every decode and validation failure of one file.
var ErrInvalidRecord = errors.New("invalid record")

func ParseRecord(b []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(b, &r); err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			var msgs []string
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", e.Field(), e.Tag()))
			}
			return r, fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(msgs, ", "))
		}
		return r, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return r, nil
}

// RecordFiles lists the *.json files of dir in name order.
func RecordFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

func ReadRecord(path string) (Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}
	r, err := ParseRecord(b)
	if err != nil {
		return r, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return r, nil
}
