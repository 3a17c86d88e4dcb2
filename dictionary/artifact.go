package dictionary

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
)

// This file implements the on-disk sysdic artifact codec described in
// spec.md §6: entries.bin and connections.bin are small fixed-header,
// packed binary arrays decoded straight out of an mmap'd byte slice with
// encoding/binary (the portable cousin of the teacher's unsafe
// reflect.SliceHeader "bytesToSlice" trick — see DESIGN.md for why this
// repo prefers the safe path); char_defs.bin and unknowns.bin are small
// and map-shaped, so they travel as a single gzip+gob blob, exactly
// mirroring the teacher's ComplexData block.
//
// The encoders here (saveEntries, saveConnections, ...) are not the
// offline dictionary builder (that remains an external collaborator per
// spec.md §1/§6); they exist so this package's own tests can construct
// small, self-consistent sysdic fixtures without depending on a real
// IPADIC build.

const (
	entriesMagic     = "IPEN"
	connectionsMagic = "IPCN"
	charDefsMagic    = "IPCD"
	unknownsMagic    = "IPUK"
)

// --- entries.bin ---

type entryRecord struct {
	LeftID     uint16
	RightID    uint16
	WordCost   int16
	Surface    uint32
	POS        uint32
	InflType   uint32
	InflForm   uint32
	BaseForm   uint32
	Reading    uint32
	Phonetic   uint32
}

func saveEntries(entries []Entry) []byte {
	pool := make([]string, 0, len(entries))
	index := make(map[string]uint32)
	intern := func(s string) uint32 {
		if id, ok := index[s]; ok {
			return id
		}
		id := uint32(len(pool))
		pool = append(pool, s)
		index[s] = id
		return id
	}

	records := make([]entryRecord, len(entries))
	for i, e := range entries {
		records[i] = entryRecord{
			LeftID:   e.LeftID,
			RightID:  e.RightID,
			WordCost: e.WordCost,
			Surface:  intern(e.Surface),
			POS:      intern(e.PartOfSpeech),
			InflType: intern(e.InflType),
			InflForm: intern(e.InflForm),
			BaseForm: intern(e.BaseForm),
			Reading:  intern(e.Reading),
			Phonetic: intern(e.Phonetic),
		}
	}

	poolBlob := gzipGobEncode(pool)

	buf := &bytes.Buffer{}
	buf.WriteString(entriesMagic)
	binary.Write(buf, binary.LittleEndian, uint64(len(records)))
	binary.Write(buf, binary.LittleEndian, uint64(len(poolBlob)))
	for _, r := range records {
		binary.Write(buf, binary.LittleEndian, r)
	}
	buf.Write(poolBlob)
	return buf.Bytes()
}

func loadEntries(raw []byte) ([]Entry, error) {
	if len(raw) < len(entriesMagic)+16 || string(raw[:len(entriesMagic)]) != entriesMagic {
		return nil, newInvalidDictionary("entries.bin: bad magic")
	}
	r := bytes.NewReader(raw[len(entriesMagic):])
	var count, poolLen uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, newInvalidDictionary("entries.bin: %v", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &poolLen); err != nil {
		return nil, newInvalidDictionary("entries.bin: %v", err)
	}

	recordSize := int(binary.Size(entryRecord{}))
	headerLen := len(raw) - r.Len()
	recordsEnd := headerLen + int(count)*recordSize
	poolEnd := recordsEnd + int(poolLen)
	if poolEnd > len(raw) {
		return nil, newInvalidDictionary("entries.bin: truncated")
	}

	records := make([]entryRecord, count)
	if err := binary.Read(bytes.NewReader(raw[headerLen:recordsEnd]), binary.LittleEndian, &records); err != nil {
		return nil, newInvalidDictionary("entries.bin: %v", err)
	}

	var pool []string
	if err := gzipGobDecode(raw[recordsEnd:poolEnd], &pool); err != nil {
		return nil, newInvalidDictionary("entries.bin: string pool: %v", err)
	}

	lookup := func(id uint32) (string, error) {
		if int(id) >= len(pool) {
			return "", fmt.Errorf("string pool index %d out of range", id)
		}
		return pool[id], nil
	}

	entries := make([]Entry, count)
	for i, rec := range records {
		surface, err1 := lookup(rec.Surface)
		pos, err2 := lookup(rec.POS)
		inflType, err3 := lookup(rec.InflType)
		inflForm, err4 := lookup(rec.InflForm)
		baseForm, err5 := lookup(rec.BaseForm)
		reading, err6 := lookup(rec.Reading)
		phonetic, err7 := lookup(rec.Phonetic)
		if err := firstErr(err1, err2, err3, err4, err5, err6, err7); err != nil {
			return nil, newInvalidDictionary("entries.bin: entry %d: %v", i, err)
		}
		entries[i] = Entry{
			Surface:      surface,
			LeftID:       rec.LeftID,
			RightID:      rec.RightID,
			WordCost:     rec.WordCost,
			PartOfSpeech: pos,
			InflType:     inflType,
			InflForm:     inflForm,
			BaseForm:     baseForm,
			Reading:      reading,
			Phonetic:     phonetic,
		}
	}
	return entries, nil
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// --- connections.bin ---

func saveConnections(rows, cols int, trans []int16) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString(connectionsMagic)
	binary.Write(buf, binary.LittleEndian, uint64(rows))
	binary.Write(buf, binary.LittleEndian, uint64(cols))
	binary.Write(buf, binary.LittleEndian, trans)
	return buf.Bytes()
}

func loadConnections(raw []byte) (*connectionMatrix, error) {
	if len(raw) < len(connectionsMagic)+16 || string(raw[:len(connectionsMagic)]) != connectionsMagic {
		return nil, newInvalidDictionary("connections.bin: bad magic")
	}
	r := bytes.NewReader(raw[len(connectionsMagic):])
	var rows, cols uint64
	if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
		return nil, newInvalidDictionary("connections.bin: %v", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &cols); err != nil {
		return nil, newInvalidDictionary("connections.bin: %v", err)
	}

	headerLen := len(raw) - r.Len()
	want := int(rows) * int(cols) * 2
	if headerLen+want > len(raw) {
		return nil, newInvalidDictionary("connections.bin: truncated matrix")
	}

	trans := make([]int16, rows*cols)
	if err := binary.Read(bytes.NewReader(raw[headerLen:headerLen+want]), binary.LittleEndian, &trans); err != nil {
		return nil, newInvalidDictionary("connections.bin: %v", err)
	}
	return &connectionMatrix{rows: int(rows), cols: int(cols), trans: trans}, nil
}

// validateEntryConnectionIDs enforces spec.md §8's universal invariant: for
// every entry, 0 ≤ left_id < C and 0 ≤ right_id < R, where the connection
// matrix is R×C. This is one of the four loader validations spec.md §6
// requires and must run before a Dictionary is handed to a caller, not
// discovered later as a decode-time surprise.
func validateEntryConnectionIDs(entries []Entry, connections *connectionMatrix) error {
	for i, e := range entries {
		if int(e.LeftID) >= connections.cols {
			return newInvalidDictionary("entry %d: left_id %d out of range for %d columns", i, e.LeftID, connections.cols)
		}
		if int(e.RightID) >= connections.rows {
			return newInvalidDictionary("entry %d: right_id %d out of range for %d rows", i, e.RightID, connections.rows)
		}
	}
	return nil
}

// --- char_defs.bin ---

type charDefsData struct {
	Categories map[string]CharCategory
	Ranges     []codePointRange
}

func saveCharDefs(d *charDefs) []byte {
	data := charDefsData{Categories: d.categories, Ranges: d.ranges}
	blob := gzipGobEncode(data)
	buf := &bytes.Buffer{}
	buf.WriteString(charDefsMagic)
	buf.Write(blob)
	return buf.Bytes()
}

func loadCharDefs(raw []byte) (*charDefs, error) {
	if len(raw) < len(charDefsMagic) || string(raw[:len(charDefsMagic)]) != charDefsMagic {
		return nil, newInvalidDictionary("char_defs.bin: bad magic")
	}
	var data charDefsData
	if err := gzipGobDecode(raw[len(charDefsMagic):], &data); err != nil {
		return nil, newInvalidDictionary("char_defs.bin: %v", err)
	}
	if len(data.Categories) == 0 {
		return nil, newInvalidDictionary("char_defs.bin: no categories")
	}
	if len(data.Ranges) == 0 {
		return nil, newInvalidDictionary("char_defs.bin: no code-point ranges")
	}
	for _, r := range data.Ranges {
		if _, ok := data.Categories[r.Primary]; !ok {
			return nil, newInvalidDictionary("char_defs.bin: range references unknown category %q", r.Primary)
		}
		for _, c := range r.Compat {
			if _, ok := data.Categories[c]; !ok {
				return nil, newInvalidDictionary("char_defs.bin: range references unknown compat category %q", c)
			}
		}
	}
	return &charDefs{categories: data.Categories, ranges: data.Ranges}, nil
}

// --- unknowns.bin ---

func saveUnknowns(unknowns map[string][]UnknownTemplate) []byte {
	blob := gzipGobEncode(unknowns)
	buf := &bytes.Buffer{}
	buf.WriteString(unknownsMagic)
	buf.Write(blob)
	return buf.Bytes()
}

func loadUnknowns(raw []byte) (map[string][]UnknownTemplate, error) {
	if len(raw) < len(unknownsMagic) || string(raw[:len(unknownsMagic)]) != unknownsMagic {
		return nil, newInvalidDictionary("unknowns.bin: bad magic")
	}
	var data map[string][]UnknownTemplate
	if err := gzipGobDecode(raw[len(unknownsMagic):], &data); err != nil {
		return nil, newInvalidDictionary("unknowns.bin: %v", err)
	}
	return data, nil
}

// --- shared gzip+gob helpers, mirroring the teacher's ComplexData codec ---

func gzipGobEncode(v any) []byte {
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(v); err != nil {
		panic(fmt.Sprintf("dictionary: gob encode: %v", err))
	}
	var compressed bytes.Buffer
	gw := gzip.NewWriter(&compressed)
	if _, err := gw.Write(raw.Bytes()); err != nil {
		panic(fmt.Sprintf("dictionary: gzip write: %v", err))
	}
	if err := gw.Close(); err != nil {
		panic(fmt.Sprintf("dictionary: gzip close: %v", err))
	}
	return compressed.Bytes()
}

func gzipGobDecode(raw []byte, v any) error {
	gr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("gzip reader: %w", err)
	}
	decompressed, err := io.ReadAll(gr)
	if err != nil {
		return fmt.Errorf("gzip read: %w", err)
	}
	if err := gr.Close(); err != nil {
		return fmt.Errorf("gzip close: %w", err)
	}
	return gob.NewDecoder(bytes.NewReader(decompressed)).Decode(v)
}
