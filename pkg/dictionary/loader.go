package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bastiangx/wordswipe/internal/utils"
	"github.com/charmbracelet/log"
)

// ErrNoWords is returned when a source yields no valid entries.
var ErrNoWords = errors.New("dictionary: no valid words")

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// Load reads a dictionary from a word list file or a directory, detecting the format.
// maxWords <= 0 loads everything.
func Load(path string, maxWords int) (*Dictionary, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loading %s from %s", format, path)

	switch format {
	case FormatChunk:
		return LoadDir(path, maxWords)
	default:
		if stat, err := os.Stat(path); err == nil && stat.IsDir() {
			path = filepath.Join(path, utils.TextDictName)
		}
		return LoadText(path, maxWords)
	}
}

// LoadText reads one word per line. Blank lines and lines starting with '#' are ignored.
func LoadText(path string, maxWords int) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	words, err := ReadText(file, maxWords)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}
	return build(words, path)
}

// ReadText collects valid, distinct words from r in input order, stopping at maxWords.
func ReadText(r io.Reader, maxWords int) ([]string, error) {
	c := newCollector(maxWords)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() && !c.full() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// frequency lists carry a count after the word
		if fields := strings.Fields(line); len(fields) > 1 {
			line = fields[0]
		}
		c.add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	c.report()
	return c.words, nil
}

// LoadDir reads every dict_NNNN.bin chunk in dir in chunk ID order until maxWords is reached.
func LoadDir(dir string, maxWords int) (*Dictionary, error) {
	chunks, err := GetAvailableChunks(dir)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunk files found in %s", dir)
	}
	log.Debugf("Found %d chunk files", len(chunks))

	c := newCollector(maxWords)
	for _, chunk := range chunks {
		if c.full() {
			break
		}
		if err := loadChunk(chunk.Filename, c); err != nil {
			return nil, fmt.Errorf("failed to load chunk %d: %w", chunk.ChunkID, err)
		}
		log.Debugf("Chunk %d loaded, %d words so far", chunk.ChunkID, len(c.words))
	}
	c.report()
	return build(c.words, dir)
}

// GetAvailableChunks scans the directory for chunk files, sorted by ID
func GetAvailableChunks(dir string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		// dict_0001.bin -> 1
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			log.Debugf("Skipping %s: not a numbered chunk", file)
			continue
		}
		if err := ValidateFileFormat(file, FormatChunk); err != nil {
			log.Warnf("Skipping chunk %s: %v", file, err)
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
		}
		chunks = append(chunks, ChunkInfo{ChunkID: chunkID, Filename: file, WordCount: wordCount})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})
	return chunks, nil
}

// chunkWordCount reads the word count from a chunk file's header
func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// loadChunk reads: int32 count, then per word uint16 length, bytes, uint16 rank.
// Rank is ignored, words are ranked by distance alone.
func loadChunk(filename string, c *collector) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		return fmt.Errorf("failed to read chunk header: %w", err)
	}

	for count := 0; count < int(totalEntries) && !c.full(); count++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				log.Warnf("Chunk %s ended after %d of %d words", filename, count, totalEntries)
				break
			}
			return fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return fmt.Errorf("failed to read rank: %w", err)
		}
		c.add(string(wordBytes))
	}
	return nil
}

// WriteChunk encodes words in the chunk format, ranking them by position.
func WriteChunk(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}
	for i, word := range words {
		if len(word) > 0xFFFF {
			return fmt.Errorf("word %d too long: %d bytes", i, len(word))
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(word))); err != nil {
			return err
		}
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		rank := uint16(min(i+1, 0xFFFF))
		if err := binary.Write(bw, binary.LittleEndian, rank); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func build(words []string, source string) (*Dictionary, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoWords, source)
	}
	d := New(words)
	log.Debugf("Dictionary loaded from %s: %d words", source, d.Len())
	return d, nil
}

// collector applies the entry rules while reading: lowercase, trimmed, valid, first
// occurrence only, at most max entries.
type collector struct {
	words   []string
	filter  *utils.WordFilter
	max     int
	invalid int
}

func newCollector(maxWords int) *collector {
	return &collector{filter: utils.NewWordFilter(), max: maxWords}
}

func (c *collector) full() bool {
	return c.max > 0 && len(c.words) >= c.max
}

func (c *collector) add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if !utils.IsValidWord(word) {
		c.invalid++
		return
	}
	if c.filter.ShouldInclude(word) {
		c.words = append(c.words, word)
	}
}

func (c *collector) report() {
	if c.invalid > 0 {
		log.Debugf("Skipped %d invalid dictionary entries", c.invalid)
	}
}
