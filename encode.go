package bondbook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// The slot holds the whole ordered book as a JSON array, one instrument per
// line so that it stays readable and diff friendly:
//
//	[
//	{"id":"01J...","name":"OFZ 26238","heldQuantity":10,"payoutMonths":[1,7],"couponRate":"35,4"},
//	{"id":"01J...","name":"RZD 1P-26R","heldQuantity":5,"payoutMonths":[3],"couponRate":"2.0"}
//	]
//
// Fields are always written in this order. couponRate is kept verbatim as typed.

// MarshalJSON writes the instrument with a fixed field order.
func (i Instrument) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	months := i.Months
	if months == nil {
		months = []Month{}
	}
	w.Append("id", string(i.ID))
	w.Append("name", i.Name)
	w.Append("heldQuantity", i.Held)
	w.Append("payoutMonths", months)
	w.Append("couponRate", string(i.Coupon))
	return w.MarshalJSON()
}

// UnmarshalJSON reads an instrument. Missing fields are left empty.
func (i *Instrument) UnmarshalJSON(data []byte) error {
	var j struct {
		ID     json.RawMessage `json:"id"`
		Name   string          `json:"name"`
		Held   Quantity        `json:"heldQuantity"`
		Months []Month         `json:"payoutMonths"`
		Coupon json.RawMessage `json:"couponRate"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	id, err := decodeID(j.ID)
	if err != nil {
		return err
	}
	coupon, err := decodeCoupon(j.Coupon)
	if err != nil {
		return err
	}
	if j.Months == nil {
		j.Months = []Month{}
	}
	*i = Instrument{ID: id, Name: j.Name, Held: j.Held, Months: j.Months, Coupon: coupon}
	return nil
}

// UnmarshalJSON reads a draft, accepting numbers as well as strings for the
// held quantity and the coupon, as a web form may send either.
func (d *Draft) UnmarshalJSON(data []byte) error {
	var j struct {
		Name   string          `json:"name"`
		Held   json.RawMessage `json:"heldQuantity"`
		Months []Month         `json:"payoutMonths"`
		Coupon json.RawMessage `json:"couponRate"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	held, err := decodeCoupon(j.Held)
	if err != nil {
		return fmt.Errorf("invalid heldQuantity: %w", err)
	}
	coupon, err := decodeCoupon(j.Coupon)
	if err != nil {
		return err
	}
	*d = Draft{Name: j.Name, Held: string(held), Months: j.Months, Coupon: coupon}
	return nil
}

// decodeID reads an id written either as a string or as a number (the browser
// tool used Date.now()).
func decodeID(raw json.RawMessage) (ID, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("invalid id %s: %w", raw, err)
		}
		return ID(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid id %s: %w", raw, err)
	}
	return ID(n.String()), nil
}

// decodeCoupon reads a coupon written as a string or, leniently, as a number.
func decodeCoupon(raw json.RawMessage) (Coupon, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("invalid coupon %s: %w", raw, err)
		}
		return Coupon(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid coupon %s: %w", raw, err)
	}
	return Coupon(n.String()), nil
}

// EncodeInstruments writes the ordered instruments to w in the slot format.
func EncodeInstruments(w io.Writer, instruments []Instrument) error {
	var b bytes.Buffer
	b.WriteString("[\n")
	for k, i := range instruments {
		data, err := json.Marshal(i)
		if err != nil {
			return fmt.Errorf("cannot encode instrument %q: %w", i.ID, err)
		}
		b.Write(data)
		if k < len(instruments)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("]\n")
	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("cannot write instruments: %w", err)
	}
	return nil
}

// DecodeInstruments reads instruments in the slot format. An empty input is an
// empty book.
func DecodeInstruments(r io.Reader) ([]Instrument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read instruments: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" || strings.TrimSpace(string(data)) == "null" {
		return []Instrument{}, nil
	}
	var instruments []Instrument
	if err := json.Unmarshal(data, &instruments); err != nil {
		return nil, fmt.Errorf("format error in instruments: %w", err)
	}
	if err := checkIDs(instruments); err != nil {
		return nil, err
	}
	return instruments, nil
}

// checkIDs verifies that every instrument has a unique, non empty id.
func checkIDs(instruments []Instrument) error {
	seen := make(map[ID]bool, len(instruments))
	for k, i := range instruments {
		if i.ID == "" {
			return fmt.Errorf("format error: instrument #%d %q has no id", k+1, i.Name)
		}
		if seen[i.ID] {
			return fmt.Errorf("format error: id %q is used twice", i.ID)
		}
		seen[i.ID] = true
	}
	return nil
}

// MarshalInstruments returns the slot encoding of instruments.
func MarshalInstruments(instruments []Instrument) ([]byte, error) {
	var b bytes.Buffer
	if err := EncodeInstruments(&b, instruments); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalInstruments decodes the slot encoding.
func UnmarshalInstruments(data []byte) ([]Instrument, error) {
	return DecodeInstruments(bytes.NewReader(data))
}
