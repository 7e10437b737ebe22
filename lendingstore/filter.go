package lendingstore

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Entity names a filterable entity type. The names double as storage table names.
type Entity string

const (
	EntityBookItem      Entity = "book_item"
	EntityMember        Entity = "member"
	EntityLease         Entity = "lease"
	EntityBooking       Entity = "booking"
	EntityRestockAction Entity = "restock_action"
)

type FilterKeyString = string
type FilterValString = string

const (
	FilterKeyBook          FilterKeyString = "book"
	FilterKeyBookItem      FilterKeyString = "book_item"
	FilterKeyMember        FilterKeyString = "member"
	FilterKeyCondition     FilterKeyString = "condition"
	FilterKeyCode          FilterKeyString = "code"
	FilterKeyRetiredOn     FilterKeyString = "retired_on"
	FilterKeyAvailable     FilterKeyString = "available"
	FilterKeyLeasedOn      FilterKeyString = "leased_on"
	FilterKeyDueDate       FilterKeyString = "due_date"
	FilterKeyReturned      FilterKeyString = "returned"
	FilterKeyOpen          FilterKeyString = "open"
	FilterKeyStatus        FilterKeyString = "status"
	FilterKeyExpireDate    FilterKeyString = "expire_date"
	FilterKeyExpireDateLTE FilterKeyString = "expire_date_lte"
	FilterKeyExpireDateGTE FilterKeyString = "expire_date_gte"
	FilterKeyActive        FilterKeyString = "active"
	FilterKeyRole          FilterKeyString = "role"
	FilterKeyPrefix        FilterKeyString = "prefix"
)

/***** FilterField *****/

// FilterOperator is the comparison a FilterField applies.
type FilterOperator int

const (
	OpEqual FilterOperator = iota
	OpLessOrEqual
	OpGreaterOrEqual
	// OpIsNull matches NULL for "true" and NOT NULL for "false".
	OpIsNull
)

// FilterValueKind determines how a raw filter value is parsed.
type FilterValueKind int

const (
	KindText FilterValueKind = iota
	KindUUID
	KindDate
	KindBool
	KindCondition
	KindBookingStatus
	KindMemberRole
)

// FilterField is one entry of the static filter registry.
//
// Direct fields compare Column of the filtered entity. Joined fields compare Column
// of the Through entity, reached via the reference attribute Via.
type FilterField struct {
	Key      FilterKeyString
	Column   string
	Through  Entity
	Via      string
	Operator FilterOperator
	Kind     FilterValueKind
}

// IsJoined reports whether the field lives on a related entity.
func (f FilterField) IsJoined() bool {
	return f.Through != ""
}

// Parse converts a raw value into the typed value the storage engine compares against.
func (f FilterField) Parse(raw FilterValString) (any, error) {
	if f.Operator == OpIsNull {
		return parseBool(raw)
	}

	switch f.Kind {
	case KindUUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		return id, nil

	case KindDate:
		d, err := ParseDate(raw)
		if err != nil {
			return nil, err
		}
		return d, nil

	case KindBool:
		return parseBool(raw)

	case KindCondition:
		if !Condition(raw).IsValid() {
			return nil, fmt.Errorf("unknown condition %q", raw)
		}
		return raw, nil

	case KindBookingStatus:
		if !BookingStatus(raw).IsValid() {
			return nil, fmt.Errorf("unknown booking status %q", raw)
		}
		return raw, nil

	case KindMemberRole:
		if !MemberRole(raw).IsValid() {
			return nil, fmt.Errorf("unknown member role %q", raw)
		}
		return raw, nil

	default:
		return raw, nil
	}
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	default:
		return strconv.ParseBool(raw)
	}
}

/***** Registry *****/

var filterRegistry = map[Entity][]FilterField{
	EntityBookItem: {
		{Key: FilterKeyBook, Column: "book_id", Kind: KindUUID},
		{Key: FilterKeyCode, Column: "code", Kind: KindText},
		{Key: FilterKeyCondition, Column: "condition", Kind: KindCondition},
		{Key: FilterKeyRetiredOn, Column: "retired_on", Kind: KindDate},
		{Key: FilterKeyAvailable, Column: "available", Kind: KindBool},
	},
	EntityMember: {
		{Key: FilterKeyActive, Column: "active", Kind: KindBool},
		{Key: FilterKeyRole, Column: "role", Kind: KindMemberRole},
	},
	EntityLease: {
		{Key: FilterKeyCondition, Column: "condition", Kind: KindCondition},
		{Key: FilterKeyBookItem, Column: "book_item_id", Kind: KindUUID},
		{Key: FilterKeyMember, Column: "member_id", Kind: KindUUID},
		{Key: FilterKeyLeasedOn, Column: "leased_on", Kind: KindDate},
		{Key: FilterKeyDueDate, Column: "due_date", Kind: KindDate},
		{Key: FilterKeyReturned, Column: "returned", Kind: KindDate},
		{Key: FilterKeyOpen, Column: "returned", Operator: OpIsNull, Kind: KindBool},
		{Key: FilterKeyBook, Column: "book_id", Through: EntityBookItem, Via: "book_item_id", Kind: KindUUID},
	},
	EntityBooking: {
		{Key: FilterKeyBook, Column: "book_id", Kind: KindUUID},
		{Key: FilterKeyMember, Column: "member_id", Kind: KindUUID},
		{Key: FilterKeyStatus, Column: "status", Kind: KindBookingStatus},
		{Key: FilterKeyExpireDate, Column: "expire_date", Kind: KindDate},
		{Key: FilterKeyExpireDateLTE, Column: "expire_date", Operator: OpLessOrEqual, Kind: KindDate},
		{Key: FilterKeyExpireDateGTE, Column: "expire_date", Operator: OpGreaterOrEqual, Kind: KindDate},
	},
	EntityRestockAction: {
		{Key: FilterKeyBook, Column: "book_id", Kind: KindUUID},
		{Key: FilterKeyPrefix, Column: "prefix", Kind: KindText},
		{Key: FilterKeyCondition, Column: "condition", Kind: KindCondition},
	},
}

// FilterFieldsOf returns the registered filter fields of an entity.
func FilterFieldsOf(entity Entity) []FilterField {
	return slices.Clone(filterRegistry[entity])
}

// LookupFilterField finds the registered field for key on entity.
func LookupFilterField(entity Entity, key FilterKeyString) (FilterField, bool) {
	for _, field := range filterRegistry[entity] {
		if field.Key == key {
			return field, true
		}
	}

	return FilterField{}, false
}

/***** Filter *****/

// FilterCondition is a validated predicate: a registry field plus its parsed value.
type FilterCondition struct {
	Field FilterField
	Value any
	raw   FilterValString
}

// Filter holds the predicates for listing one entity type. All predicates must match.
type Filter struct {
	entity     Entity
	conditions []FilterCondition
}

func (f Filter) Entity() Entity {
	return f.entity
}

func (f Filter) Conditions() []FilterCondition {
	return f.conditions
}

func (f Filter) IsEmpty() bool {
	return len(f.conditions) == 0
}

/***** FilterBuilder *****/

// FilterBuilder collects predicates against the registry of one entity.
// The first invalid entity, key or value is reported by Finalize.
type FilterBuilder struct {
	entity     Entity
	conditions []FilterCondition
	err        error
}

// BuildFilter starts a Filter for entity.
func BuildFilter(entity Entity) FilterBuilder {
	fb := FilterBuilder{entity: entity}

	if _, ok := filterRegistry[entity]; !ok {
		fb.err = fmt.Errorf("%w: %q", ErrUnknownFilterEntity, entity)
	}

	return fb
}

// Where adds a predicate. Blank values are ignored, so unset optional parameters can be passed through.
func (fb FilterBuilder) Where(key FilterKeyString, val FilterValString) FilterBuilder {
	if fb.err != nil {
		return fb
	}

	val = strings.TrimSpace(val)
	if val == "" {
		return fb
	}

	field, ok := LookupFilterField(fb.entity, key)
	if !ok {
		fb.err = fmt.Errorf("%w: %q is not filterable on %s", ErrUnknownFilterKey, key, fb.entity)
		return fb
	}

	value, parseErr := field.Parse(val)
	if parseErr != nil {
		fb.err = fmt.Errorf("%w: %s: %w", ErrInvalidFilterValue, key, parseErr)
		return fb
	}

	fb.conditions = append(slices.Clone(fb.conditions), FilterCondition{Field: field, Value: value, raw: val})

	return fb
}

// WhereAll adds one predicate per map entry, in key order.
func (fb FilterBuilder) WhereAll(params map[FilterKeyString]FilterValString) FilterBuilder {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fb = fb.Where(key, params[key])
	}

	return fb
}

// Finalize returns the Filter with its predicates sorted and deduplicated.
func (fb FilterBuilder) Finalize() (Filter, error) {
	if fb.err != nil {
		return Filter{}, fb.err
	}

	conditions := slices.Clone(fb.conditions)
	slices.SortFunc(conditions, func(a, b FilterCondition) int {
		if c := strings.Compare(a.Field.Key, b.Field.Key); c != 0 {
			return c
		}
		return strings.Compare(a.raw, b.raw)
	})
	conditions = slices.CompactFunc(conditions, func(a, b FilterCondition) bool {
		return a.Field.Key == b.Field.Key && a.raw == b.raw
	})

	return Filter{entity: fb.entity, conditions: conditions}, nil
}
