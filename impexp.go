package bondbook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// This file handles the format of the browser version of the tool, to move a
// book from and to a browser's localStorage.
//
// The browser kept the book under the "bondsData" key as a JSON array of
// objects with the properties 'key' (a Date.now() number), 'name',
// 'portfolio' (held quantity, number or string), 'month' (array of 1-12) and
// 'coupon' (string).

// LegacySlot is the localStorage key the browser version used.
const LegacySlot = "bondsData"

// DefaultLegacyPath selects the slot in a dump of the whole localStorage.
const DefaultLegacyPath = "$." + LegacySlot

type jlegacy struct {
	Key       json.RawMessage `json:"key"`
	Name      string          `json:"name"`
	Portfolio Quantity        `json:"portfolio"`
	Month     []Month         `json:"month"`
	Coupon    json.RawMessage `json:"coupon"`
	Payments  string          `json:"payments"`
}

// ImportLegacy reads instruments from r in the browser format.
//
// r is either the bondsData array itself, or a JSON document containing it,
// like a dump of localStorage. In the latter case path is the JSONPath
// expression selecting the slot (DefaultLegacyPath if empty). As localStorage
// only stores strings, a selected string value is decoded a second time.
func ImportLegacy(r io.Reader, path string) ([]Instrument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read legacy data: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []Instrument{}, nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("legacy data is not a correct json: %w", err)
	}

	if _, isArray := doc.([]any); !isArray {
		if path == "" {
			path = DefaultLegacyPath
		}
		jval, err := jsonpath.Get(path, doc)
		if err != nil {
			return nil, fmt.Errorf("cannot select %q in legacy data: %w", path, err)
		}
		// jsonpath returns a list for wildcard paths, keep the first answer.
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 && isSlot(jlist[0]) {
			jval = jlist[0]
		}
		if s, ok := jval.(string); ok {
			data = []byte(s)
		} else {
			data, err = json.Marshal(jval)
			if err != nil {
				return nil, fmt.Errorf("cannot read %q in legacy data: %w", path, err)
			}
		}
	}

	if strings.TrimSpace(string(data)) == "null" {
		return []Instrument{}, nil
	}
	var jbonds []jlegacy
	if err := json.Unmarshal(data, &jbonds); err != nil {
		return nil, fmt.Errorf("cannot parse legacy bonds: %w", err)
	}

	instruments := make([]Instrument, 0, len(jbonds))
	for _, jb := range jbonds {
		id, err := decodeID(jb.Key)
		if err != nil {
			return nil, err
		}
		if id == "" {
			id = NewID()
		}
		coupon, err := decodeCoupon(jb.Coupon)
		if err != nil {
			return nil, err
		}
		months := jb.Month
		if months == nil {
			months = []Month{}
		}
		instruments = append(instruments, Instrument{
			ID:     id,
			Name:   jb.Name,
			Held:   jb.Portfolio,
			Months: months,
			Coupon: coupon,
		})
	}
	if err := checkIDs(instruments); err != nil {
		return nil, err
	}
	return instruments, nil
}

// isSlot reports whether v looks like a stored slot: a string or an array.
func isSlot(v any) bool {
	switch v.(type) {
	case string, []any:
		return true
	}
	return false
}

// ExportLegacy writes instruments to w as a bondsData array, ready to be set
// back into a browser's localStorage.
func ExportLegacy(w io.Writer, instruments []Instrument) error {
	jbonds := make([]map[string]any, 0, len(instruments))
	for _, i := range instruments {
		var key any = string(i.ID)
		var n json.Number
		if err := json.Unmarshal([]byte(i.ID), &n); err == nil {
			key = n
		}
		months := i.Months
		if months == nil {
			months = []Month{}
		}
		jbonds = append(jbonds, map[string]any{
			"key":       key,
			"name":      i.Name,
			"portfolio": i.Held,
			"month":     months,
			"coupon":    string(i.Coupon),
			"payments":  "",
		})
	}
	data, err := json.Marshal(jbonds)
	if err != nil {
		return fmt.Errorf("cannot marshal legacy bonds: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write legacy bonds: %w", err)
	}
	return nil
}
