package dictionary

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/edsrzf/mmap-go"

	"github.com/gomorph/ipadic/fst"
)

// sysdicFiles lists the five required artifacts of a sysdic directory, per
// spec.md §6. Grounded on the teacher's mergeFilesWithPrefix, which located
// and verified the split parts of its single .dawg artifact before loading
// it; validateSysdicDir below plays the same locate-and-verify role for a
// directory of discrete files instead of split chunks of one file.
var sysdicFiles = []string{
	"dic.fst",
	"entries.bin",
	"connections.bin",
	"char_defs.bin",
	"unknowns.bin",
}

// validateSysdicDir confirms dir exists and contains every required sysdic
// file, returning ErrDictionaryDirectoryMissing (wrapped with the offending
// path) otherwise.
func validateSysdicDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrDictionaryDirectoryMissing, dir)
	}
	for _, name := range sysdicFiles {
		path := filepath.Join(dir, name)
		fi, err := os.Stat(path)
		if err != nil || fi.IsDir() {
			return fmt.Errorf("%w: %s", ErrDictionaryDirectoryMissing, path)
		}
	}
	return nil
}

// mmapFile opens path read-only and maps it into memory, returning the
// backing mmap.MMap (which is itself a []byte) and the handle needed to
// keep the mapping alive for the process lifetime. Mirrors the teacher's
// zero-copy loadInternal, one file at a time rather than one offset range
// within a single combined artifact.
func mmapFile(path string) (mmap.MMap, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDictionaryDirectoryMissing, err)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, newInvalidDictionary("mmap %s: %v", path, err)
	}
	return m, f, nil
}

func readFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDictionaryDirectoryMissing, err)
	}
	return raw, nil
}

// Load reads a sysdic directory into a ready-to-use Dictionary. dic.fst,
// entries.bin and connections.bin are mmap'd read-only and decoded from the
// mapping into Go slices; char_defs.bin and unknowns.bin are small and
// map-shaped so they
// are read and gob-decoded in full. Grounded on the teacher's
// LoadMorphAnalyzer / loadInternal pair.
func Load(dir string) (*Dictionary, error) {
	if err := validateSysdicDir(dir); err != nil {
		return nil, err
	}

	fstMap, fstFile, err := mmapFile(filepath.Join(dir, "dic.fst"))
	if err != nil {
		return nil, err
	}
	matcher, err := fst.Load(fstMap)
	if err != nil {
		fstFile.Close()
		return nil, fmt.Errorf("dic.fst: %w", err)
	}

	entriesMap, entriesFile, err := mmapFile(filepath.Join(dir, "entries.bin"))
	if err != nil {
		fstFile.Close()
		return nil, err
	}
	entries, err := loadEntries(entriesMap)
	if err != nil {
		fstFile.Close()
		entriesFile.Close()
		return nil, fmt.Errorf("entries.bin: %w", err)
	}

	connMap, connFile, err := mmapFile(filepath.Join(dir, "connections.bin"))
	if err != nil {
		fstFile.Close()
		entriesFile.Close()
		return nil, err
	}
	connections, err := loadConnections(connMap)
	if err != nil {
		fstFile.Close()
		entriesFile.Close()
		connFile.Close()
		return nil, fmt.Errorf("connections.bin: %w", err)
	}
	if err := validateEntryConnectionIDs(entries, connections); err != nil {
		fstFile.Close()
		entriesFile.Close()
		connFile.Close()
		return nil, fmt.Errorf("entries.bin: %w", err)
	}

	charDefsRaw, err := readFile(filepath.Join(dir, "char_defs.bin"))
	if err != nil {
		fstFile.Close()
		entriesFile.Close()
		connFile.Close()
		return nil, err
	}
	chars, err := loadCharDefs(charDefsRaw)
	if err != nil {
		fstFile.Close()
		entriesFile.Close()
		connFile.Close()
		return nil, fmt.Errorf("char_defs.bin: %w", err)
	}

	unknownsRaw, err := readFile(filepath.Join(dir, "unknowns.bin"))
	if err != nil {
		fstFile.Close()
		entriesFile.Close()
		connFile.Close()
		return nil, err
	}
	unknowns, err := loadUnknowns(unknownsRaw)
	if err != nil {
		fstFile.Close()
		entriesFile.Close()
		connFile.Close()
		return nil, fmt.Errorf("unknowns.bin: %w", err)
	}

	return newDictionary(matcher, entries, connections, chars, unknowns,
		[]io.Closer{fstFile, entriesFile, connFile}), nil
}

// LoadFromMemory builds a Dictionary directly from in-memory components,
// bypassing mmap entirely. Used by tests and by WithUserEntries, which
// need to assemble a Dictionary without a sysdic directory on disk.
func LoadFromMemory(entries []Entry, connections *connectionMatrix, chars *charDefs, unknowns map[string][]UnknownTemplate) *Dictionary {
	buildEntries := make([]fst.BuildEntry, 0, len(entries))
	for i, e := range entries {
		buildEntries = append(buildEntries, fst.BuildEntry{Surface: e.Surface, Value: uint32(i)})
	}
	matcher := fst.Build(buildEntries)
	return newDictionary(matcher, entries, connections, chars, unknowns, nil)
}

var (
	instance     *Dictionary
	instanceErr  error
	instanceOnce sync.Once
)

// Instance returns the process-wide default Dictionary, loaded once from
// IPADIC_SYSDIC_PATH if set, or from a "sysdic" directory next to this
// source file otherwise. Grounded on the teacher's lazy, sync.Once-guarded
// MorphAnalyzer singleton.
func Instance() (*Dictionary, error) {
	instanceOnce.Do(func() {
		dir := os.Getenv("IPADIC_SYSDIC_PATH")
		if dir == "" {
			_, thisFile, _, ok := runtime.Caller(0)
			if !ok {
				instanceErr = fmt.Errorf("%w: cannot locate default sysdic path", ErrInitialization)
				return
			}
			dir = filepath.Join(filepath.Dir(thisFile), "sysdic")
		}
		instance, instanceErr = Load(dir)
		if instanceErr != nil {
			instanceErr = fmt.Errorf("%w: %v", ErrInitialization, instanceErr)
		}
	})
	return instance, instanceErr
}
