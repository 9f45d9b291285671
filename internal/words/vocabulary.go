// internal/words/vocabulary.go
//
// Vocabulary: the finite list of words a candidate may be drawn from.
//
// Loading behavior (Load):
//  1. If AnswersFile and AllowedFile are both set,
//     load answers from the first and allowed guesses from the second.
//  2. If only AllowedFile is set,
//     load that file and use it for both answers and allowed guesses.
//  3. If neither is set,
//     fall back to the embedded lists in the assets package.
//
// Words must be 5 alphabetic letters; lists are normalized to lowercase,
// de-duplicated and sorted. A Vocabulary is never mutated after construction.
package words

import (
	"bufio"
	"errors"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle-solver/assets"
)

// ErrEmptyVocabulary is returned when a list yields no valid words.
var ErrEmptyVocabulary = errors.New("words: vocabulary is empty")

// Vocabulary is an immutable, sorted set of words.
type Vocabulary struct {
	list []Word
	set  map[Word]struct{}
}

// NewVocabulary validates raw and builds a Vocabulary. Invalid entries are
// skipped; an empty result is an error.
func NewVocabulary(raw []string) (*Vocabulary, error) {
	parsed := make([]Word, 0, len(raw))
	for _, s := range raw {
		if w, err := Parse(s); err == nil {
			parsed = append(parsed, w)
		}
	}
	parsed = lo.Uniq(parsed)
	if len(parsed) == 0 {
		return nil, ErrEmptyVocabulary
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].String() < parsed[j].String() })

	set := make(map[Word]struct{}, len(parsed))
	for _, w := range parsed {
		set[w] = struct{}{}
	}
	return &Vocabulary{list: parsed, set: set}, nil
}

// MustVocabulary is NewVocabulary for tests and fixed tables.
func MustVocabulary(raw ...string) *Vocabulary {
	v, err := NewVocabulary(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// Len returns the number of words.
func (v *Vocabulary) Len() int { return len(v.list) }

// At returns the i-th word in sorted order.
func (v *Vocabulary) At(i int) Word { return v.list[i] }

// Words returns a copy of the sorted word list.
func (v *Vocabulary) Words() []Word {
	out := make([]Word, len(v.list))
	copy(out, v.list)
	return out
}

// Contains reports whether w is in the vocabulary.
func (v *Vocabulary) Contains(w Word) bool {
	_, ok := v.set[w]
	return ok
}

// Union returns a vocabulary holding the words of both v and other. Both
// inputs are already validated, so the merge does not re-parse them.
func (v *Vocabulary) Union(other *Vocabulary) *Vocabulary {
	set := make(map[Word]struct{}, v.Len()+other.Len())
	for _, w := range v.list {
		set[w] = struct{}{}
	}
	for _, w := range other.list {
		set[w] = struct{}{}
	}
	list := lo.Keys(set)
	sort.Slice(list, func(i, j int) bool { return list[i].String() < list[j].String() })
	return &Vocabulary{list: list, set: set}
}

// Source names optional word files. Empty fields fall back to embedded lists.
type Source struct {
	AnswersFile string
	AllowedFile string
}

// Lists bundles the two vocabularies a game needs.
type Lists struct {
	Answers *Vocabulary // canonical targets
	Allowed *Vocabulary // answers ∪ accepted guesses
}

// Load reads the answer and allowed lists described by src.
func Load(src Source) (*Lists, error) {
	var ansList, allowList []string
	var err error

	switch {
	case src.AnswersFile != "" && src.AllowedFile != "":
		if ansList, err = readWordFile(src.AnswersFile); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(src.AllowedFile); err != nil {
			return nil, err
		}

	case src.AllowedFile != "":
		if allowList, err = readWordFile(src.AllowedFile); err != nil {
			return nil, err
		}
		ansList = allowList

	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, err
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, err
		}
	}

	answers, err := NewVocabulary(ansList)
	if err != nil {
		return nil, err
	}
	allowed := answers
	if len(allowList) > 0 {
		extra, err := NewVocabulary(allowList)
		if err != nil {
			return nil, err
		}
		allowed = answers.Union(extra)
	}
	return &Lists{Answers: answers, Allowed: allowed}, nil
}

// readWordFile loads one word per line from a file,
// lowercases, trims, and keeps only valid 5-letter alphabetic words.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if len(w) == Length && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}
