package models

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrIncorrectFilter = errors.New("filter item must be name=value")
	ErrUnknownFilter   = errors.New("unknown filter")
	ErrInvalidOrdering = errors.New("invalid ordering")
)

// FilterKeys lists the query keys in serialization order.
var FilterKeys = []string{
	"created_at__gte", "created_at__lte", "created_at__exact",
	"status", "transaction_type", "category", "subcategory",
	"amount__gte", "amount__lte", "amount__exact", "ordering",
}

// Orderings accepted by the transactions endpoint.
var Orderings = []string{"created_at", "-created_at", "amount", "-amount"}

// Filters is the sparse set of list predicates. A nil pointer or an empty
// string means "not set" and is left out of the query string.
type Filters struct {
	CreatedAtGte    *string
	CreatedAtLte    *string
	CreatedAtExact  *string
	Status          *int64
	TransactionType *int64
	Category        *int64
	Subcategory     *int64
	AmountGte       *decimal.Decimal
	AmountLte       *decimal.Decimal
	AmountExact     *decimal.Decimal
	Ordering        *string
}

// Pairs returns the set predicates as key/value pairs, in field order.
func (f Filters) Pairs() [][2]string {
	var out [][2]string
	str := func(k string, v *string) {
		if v != nil && *v != "" {
			out = append(out, [2]string{k, *v})
		}
	}
	num := func(k string, v *int64) {
		if v != nil {
			out = append(out, [2]string{k, strconv.FormatInt(*v, 10)})
		}
	}
	dec := func(k string, v *decimal.Decimal) {
		if v != nil {
			out = append(out, [2]string{k, v.String()})
		}
	}

	str("created_at__gte", f.CreatedAtGte)
	str("created_at__lte", f.CreatedAtLte)
	str("created_at__exact", f.CreatedAtExact)
	num("status", f.Status)
	num("transaction_type", f.TransactionType)
	num("category", f.Category)
	num("subcategory", f.Subcategory)
	dec("amount__gte", f.AmountGte)
	dec("amount__lte", f.AmountLte)
	dec("amount__exact", f.AmountExact)
	str("ordering", f.Ordering)
	return out
}

// Query serializes the set into a query string without the leading '?'.
func (f Filters) Query() string {
	pairs := f.Pairs()
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, url.QueryEscape(p[0])+"="+url.QueryEscape(p[1]))
	}
	return strings.Join(parts, "&")
}

// IsEmpty reports whether no predicate is set.
func (f Filters) IsEmpty() bool {
	return len(f.Pairs()) == 0
}

// Validate rejects values the server would silently ignore.
func (f Filters) Validate() error {
	if f.Ordering == nil || *f.Ordering == "" {
		return nil
	}
	if !slices.Contains(Orderings, *f.Ordering) {
		return fmt.Errorf("%w %q, must be one of %v", ErrInvalidOrdering, *f.Ordering, Orderings)
	}
	return nil
}

// Set assigns one predicate by its query key. An empty value clears it.
func (f *Filters) Set(key, value string) error {
	var err error
	switch key {
	case "created_at__gte":
		f.CreatedAtGte = optString(value)
	case "created_at__lte":
		f.CreatedAtLte = optString(value)
	case "created_at__exact":
		f.CreatedAtExact = optString(value)
	case "status":
		f.Status, err = optInt(value)
	case "transaction_type":
		f.TransactionType, err = optInt(value)
	case "category":
		f.Category, err = optInt(value)
	case "subcategory":
		f.Subcategory, err = optInt(value)
	case "amount__gte":
		f.AmountGte, err = optDecimal(value)
	case "amount__lte":
		f.AmountLte, err = optDecimal(value)
	case "amount__exact":
		f.AmountExact, err = optDecimal(value)
	case "ordering":
		f.Ordering = optString(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFilter, key)
	}
	if err != nil {
		return fmt.Errorf("filter %s: %w", key, err)
	}
	return nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseFilters builds a filter set from "name=value" lines.
func ParseFilters(lines []string) (Filters, error) {
	var f Filters
	for _, line := range lines {
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return Filters{}, ErrIncorrectFilter
		}
		if err := f.Set(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
			return Filters{}, err
		}
	}
	if err := f.Validate(); err != nil {
		return Filters{}, err
	}
	return f, nil
}

// FiltersFromValues builds a filter set from URL query values. Keys that
// are not filters are ignored.
func FiltersFromValues(values url.Values) (Filters, error) {
	var f Filters
	for key := range values {
		err := f.Set(key, values.Get(key))
		if errors.Is(err, ErrUnknownFilter) {
			continue
		}
		if err != nil {
			return Filters{}, err
		}
	}
	if err := f.Validate(); err != nil {
		return Filters{}, err
	}
	return f, nil
}
