package value

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var ErrInvalidCategoryRef = errors.New("invalid category reference")

// CategoryRef is the decoded form of a provider category field: either a
// single category id or a group of references (sub-category groupings).
type CategoryRef struct {
	id      int64
	refs    []CategoryRef
	isGroup bool
}

func Single(id int64) CategoryRef {
	return CategoryRef{id: id}
}

func Group(refs ...CategoryRef) CategoryRef {
	return CategoryRef{refs: refs, isGroup: true}
}

func (r CategoryRef) IsGroup() bool {
	return r.isGroup
}

// ID returns the id of a Single reference; it is 0 for groups.
func (r CategoryRef) ID() int64 {
	return r.id
}

func (r CategoryRef) Refs() []CategoryRef {
	return r.refs
}

// Flatten returns every id in document order, depth first.
func (r CategoryRef) Flatten() []int64 {
	if !r.isGroup {
		return []int64{r.id}
	}

	ids := make([]int64, 0, len(r.refs))
	for _, ref := range r.refs {
		ids = append(ids, ref.Flatten()...)
	}

	return ids
}

func (r CategoryRef) Contains(id int64) bool {
	for _, candidate := range r.Flatten() {
		if candidate == id {
			return true
		}
	}

	return false
}

// ParseCategoryRef decodes the raw column value. Accepted forms: 3, "3",
// [1,2], [1,[2,3]], ["1","2"] and a JSON string holding any of those.
// Blank input and null decode to an empty group.
func ParseCategoryRef(raw string) (CategoryRef, error) {
	var ref CategoryRef
	if err := ref.UnmarshalJSON([]byte(raw)); err != nil {
		return CategoryRef{}, err
	}

	return ref, nil
}

func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*r = Group()
		return nil
	case data[0] == '[':
		var items []jsoniter.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCategoryRef, err)
		}

		refs := make([]CategoryRef, 0, len(items))

		for _, item := range items {
			var ref CategoryRef
			if err := ref.UnmarshalJSON(item); err != nil {
				return err
			}

			refs = append(refs, ref)
		}

		*r = Group(refs...)

		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCategoryRef, err)
		}

		if id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			*r = Single(id)
			return nil
		}

		// double-encoded column value
		if strings.ContainsAny(s, "[\"") {
			return r.UnmarshalJSON([]byte(s))
		}

		return fmt.Errorf("%w: %q", ErrInvalidCategoryRef, s)
	default:
		id, err := parseNumericID(string(data))
		if err != nil {
			return err
		}

		*r = Single(id)

		return nil
	}
}

func (r CategoryRef) MarshalJSON() ([]byte, error) {
	if !r.isGroup {
		return strconv.AppendInt(nil, r.id, 10), nil
	}

	refs := r.refs
	if refs == nil {
		refs = []CategoryRef{}
	}

	return json.Marshal(refs)
}

func parseNumericID(s string) (int64, error) {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidCategoryRef, s)
	}

	return int64(f), nil
}
