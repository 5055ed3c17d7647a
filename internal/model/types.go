package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Category is the training domain a question belongs to.
type Category string

const (
	CategoryPolicy          Category = "policy"
	CategoryOperations      Category = "operations"
	CategoryCustomerService Category = "customer_service"
	CategorySafety          Category = "safety"
	CategoryLeadership      Category = "leadership"

	// CategoryMixed labels results of sessions drawn from several categories.
	CategoryMixed Category = "mixed"
)

var questionCategories = []Category{
	CategoryPolicy,
	CategoryOperations,
	CategoryCustomerService,
	CategorySafety,
	CategoryLeadership,
}

// Categories returns the categories a question may be filed under.
func Categories() []Category {
	out := make([]Category, len(questionCategories))
	copy(out, questionCategories)
	return out
}

// Valid reports whether c is a question category. CategoryMixed is not.
func (c Category) Valid() bool {
	for _, known := range questionCategories {
		if c == known {
			return true
		}
	}
	return false
}

type QuestionType string

const (
	QuestionTypeObjective QuestionType = "objective"
	QuestionTypeOpenEnded QuestionType = "open_ended"
)

// AnswerSet is a sorted set of option indices. It is the single representation
// of both the stored answer key and a user's selection.
type AnswerSet []int

func NewAnswerSet(indices ...int) AnswerSet {
	seen := make(map[int]struct{}, len(indices))
	out := make(AnswerSet, 0, len(indices))
	for _, i := range indices {
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (s AnswerSet) Contains(index int) bool {
	for _, i := range s {
		if i == index {
			return true
		}
	}
	return false
}

// Toggle returns a new set with index added if absent, removed if present.
func (s AnswerSet) Toggle(index int) AnswerSet {
	if s.Contains(index) {
		out := make(AnswerSet, 0, len(s))
		for _, i := range s {
			if i != index {
				out = append(out, i)
			}
		}
		return out
	}
	return NewAnswerSet(append(append([]int{}, s...), index)...)
}

// Equal is order-independent set equality.
func (s AnswerSet) Equal(other AnswerSet) bool {
	a, b := NewAnswerSet(s...), NewAnswerSet(other...)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// UnmarshalJSON accepts a single index, an array of indices or null.
func (s *AnswerSet) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*s = nil
	case float64:
		if v != float64(int(v)) {
			return fmt.Errorf("answer index must be an integer, got %v", v)
		}
		*s = NewAnswerSet(int(v))
	case []any:
		indices := make([]int, 0, len(v))
		for _, item := range v {
			f, ok := item.(float64)
			if !ok || f != float64(int(f)) {
				return fmt.Errorf("answer index must be an integer, got %v", item)
			}
			indices = append(indices, int(f))
		}
		*s = NewAnswerSet(indices...)
	default:
		return fmt.Errorf("unsupported answer set encoding: %s", string(data))
	}
	return nil
}

func (s AnswerSet) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	arr := make(pq.Int64Array, len(s))
	for i, v := range s {
		arr[i] = int64(v)
	}
	return arr.Value()
}

func (s *AnswerSet) Scan(src any) error {
	var arr pq.Int64Array
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("scan answer set: %w", err)
	}
	if arr == nil {
		*s = nil
		return nil
	}
	indices := make([]int, len(arr))
	for i, v := range arr {
		indices[i] = int(v)
	}
	*s = NewAnswerSet(indices...)
	return nil
}

func (AnswerSet) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "integer[]"
	}
	return "text"
}

// StringList is an ordered list of strings stored as a postgres text[].
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return pq.StringArray(l).Value()
}

func (l *StringList) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	if arr == nil {
		*l = nil
		return nil
	}
	*l = StringList(arr)
	return nil
}

func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// IDList is an ordered list of record ids stored as a postgres integer[].
type IDList []uint

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	arr := make(pq.Int64Array, len(l))
	for i, v := range l {
		arr[i] = int64(v)
	}
	return arr.Value()
}

func (l *IDList) Scan(src any) error {
	var arr pq.Int64Array
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("scan id list: %w", err)
	}
	if arr == nil {
		*l = nil
		return nil
	}
	out := make(IDList, len(arr))
	for i, v := range arr {
		out[i] = uint(v)
	}
	*l = out
	return nil
}

func (IDList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "integer[]"
	}
	return "text"
}
