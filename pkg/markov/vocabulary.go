package markov

import "sort"

// Vocabulary is an ordered, deduplicated set of segment labels. Each label
// owns a stable integer index in [0, Len). Indices are assigned by sorting
// the labels ascending, so the same label set always produces the same
// encoding regardless of input order.
type Vocabulary struct {
	labels  []string
	indexOf map[string]int
}

// NewVocabulary builds a vocabulary from an arbitrary label list.
// Duplicates are collapsed.
func NewVocabulary(labels []string) *Vocabulary {
	seen := make(map[string]struct{}, len(labels))
	unique := make([]string, 0, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		unique = append(unique, l)
	}
	sort.Strings(unique)

	indexOf := make(map[string]int, len(unique))
	for i, l := range unique {
		indexOf[l] = i
	}
	return &Vocabulary{labels: unique, indexOf: indexOf}
}

// Len returns the number of distinct labels.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.labels)
}

// Index returns the index of a label and whether it is present.
func (v *Vocabulary) Index(label string) (int, bool) {
	if v == nil {
		return 0, false
	}
	i, ok := v.indexOf[label]
	return i, ok
}

// Label returns the label at the given index. It panics on out-of-range
// indices, which only occur through programmer error.
func (v *Vocabulary) Label(i int) string {
	return v.labels[i]
}

// Labels returns a copy of the ordered label list.
func (v *Vocabulary) Labels() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.labels))
	copy(out, v.labels)
	return out
}
