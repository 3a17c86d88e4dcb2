package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomorph/ipadic/fst"
)

func TestEntriesRoundTrip(t *testing.T) {
	entries := testEntries()
	blob := saveEntries(entries)
	got, err := loadEntries(blob)
	require.NoError(t, err)
	require.Equal(t, entries, got)
}

func TestEntriesRoundTripDedupesStringPool(t *testing.T) {
	entries := []Entry{
		{Surface: "a", PartOfSpeech: "名詞"},
		{Surface: "b", PartOfSpeech: "名詞"},
	}
	blob := saveEntries(entries)
	got, err := loadEntries(blob)
	require.NoError(t, err)
	require.Equal(t, entries, got)
}

func TestLoadEntriesRejectsBadMagic(t *testing.T) {
	_, err := loadEntries([]byte("nope"))
	require.Error(t, err)
}

func TestConnectionsRoundTrip(t *testing.T) {
	blob := saveConnections(2, 3, []int16{1, -2, 3, 4, -5, 6})
	m, err := loadConnections(blob)
	require.NoError(t, err)
	cost, err := m.cost(1, 2)
	require.NoError(t, err)
	require.Equal(t, int16(6), cost)
}

func TestConnectionsRejectsTruncated(t *testing.T) {
	blob := saveConnections(2, 2, []int16{1, 2, 3, 4})
	_, err := loadConnections(blob[:len(blob)-2])
	require.Error(t, err)
}

func TestCharDefsRoundTrip(t *testing.T) {
	d := testChars()
	blob := saveCharDefs(d)
	got, err := loadCharDefs(blob)
	require.NoError(t, err)
	require.Equal(t, d.categories, got.categories)
	require.Equal(t, d.ranges, got.ranges)
}

func TestCharDefsRejectsDanglingCategoryReference(t *testing.T) {
	d := &charDefs{
		categories: map[string]CharCategory{"A": {Name: "A"}},
		ranges:     []codePointRange{{From: 0, To: 1, Primary: "GHOST"}},
	}
	blob := saveCharDefs(d)
	_, err := loadCharDefs(blob)
	require.Error(t, err)
}

func TestUnknownsRoundTrip(t *testing.T) {
	src := map[string][]UnknownTemplate{
		DefaultCategory: {{LeftID: 1, RightID: 2, Cost: 100, PartOfSpeech: "未知語"}},
	}
	blob := saveUnknowns(src)
	got, err := loadUnknowns(blob)
	require.NoError(t, err)
	require.Equal(t, src, got)
}

func TestValidateEntryConnectionIDsRejectsOutOfRangeLeftID(t *testing.T) {
	entries := []Entry{{Surface: "x", LeftID: 2, RightID: 0}}
	conn := &connectionMatrix{rows: 2, cols: 2, trans: []int16{0, 0, 0, 0}}
	err := validateEntryConnectionIDs(entries, conn)
	require.Error(t, err)
}

func TestValidateEntryConnectionIDsRejectsOutOfRangeRightID(t *testing.T) {
	entries := []Entry{{Surface: "x", LeftID: 0, RightID: 2}}
	conn := &connectionMatrix{rows: 2, cols: 2, trans: []int16{0, 0, 0, 0}}
	err := validateEntryConnectionIDs(entries, conn)
	require.Error(t, err)
}

func TestValidateEntryConnectionIDsAcceptsInRange(t *testing.T) {
	entries := testEntries()
	conn := &connectionMatrix{rows: 2, cols: 2, trans: []int16{0, 0, 0, 0}}
	require.NoError(t, validateEntryConnectionIDs(entries, conn))
}

func TestLoadRejectsEntryWithOutOfRangeConnectionID(t *testing.T) {
	dir := t.TempDir()
	entries := []Entry{{Surface: "x", LeftID: 5, RightID: 0, PartOfSpeech: "名詞", BaseForm: "x"}}
	chars := testChars()
	unknowns := map[string][]UnknownTemplate{
		DefaultCategory: {{LeftID: 0, RightID: 0, Cost: 1000, PartOfSpeech: "名詞,一般"}},
	}

	buildEntries := make([]fst.BuildEntry, len(entries))
	for i, e := range entries {
		buildEntries[i] = fst.BuildEntry{Surface: e.Surface, Value: uint32(i)}
	}
	matcherBytes := fst.Build(buildEntries).Bytes()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dic.fst"), matcherBytes, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "entries.bin"), saveEntries(entries), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "connections.bin"), saveConnections(2, 2, []int16{0, 1, 2, 3}), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "char_defs.bin"), saveCharDefs(chars), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unknowns.bin"), saveUnknowns(unknowns), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	var invalid *InvalidDictionaryError
	require.ErrorAs(t, err, &invalid)
}

func TestValidateSysdicDirMissingDirectory(t *testing.T) {
	err := validateSysdicDir(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, ErrDictionaryDirectoryMissing)
}

func TestValidateSysdicDirMissingFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range sysdicFiles[:len(sysdicFiles)-1] {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	err := validateSysdicDir(dir)
	require.ErrorIs(t, err, ErrDictionaryDirectoryMissing)
}

func TestValidateSysdicDirComplete(t *testing.T) {
	dir := t.TempDir()
	for _, name := range sysdicFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, validateSysdicDir(dir))
}

func TestLoadFullRoundTripFromDisk(t *testing.T) {
	dir := t.TempDir()
	entries := testEntries()
	chars := testChars()
	unknowns := map[string][]UnknownTemplate{
		DefaultCategory: {{LeftID: 0, RightID: 0, Cost: 1000, PartOfSpeech: "名詞,一般"}},
	}

	buildEntries := make([]fst.BuildEntry, len(entries))
	for i, e := range entries {
		buildEntries[i] = fst.BuildEntry{Surface: e.Surface, Value: uint32(i)}
	}
	matcherBytes := fst.Build(buildEntries).Bytes()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dic.fst"), matcherBytes, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "entries.bin"), saveEntries(entries), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "connections.bin"), saveConnections(2, 2, []int16{0, 1, 2, 3}), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "char_defs.bin"), saveCharDefs(chars), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unknowns.bin"), saveUnknowns(unknowns), 0o644))

	d, err := Load(dir)
	require.NoError(t, err)
	defer d.Close()

	require.Len(t, d.Lookup("もも"), 2)
	require.Len(t, d.PrefixLookup("ももすもも"), 2)
}
