package importer

// StationRecord accumulates station attributes across sources before the row
// is materialized. Fields fill first-write-wins: once a source has set a
// field, later sources never overwrite it.
type StationRecord struct {
	Name string

	Code              *string
	Region            *string
	BuildingName      *string
	MriBldId          *string
	Address           *string
	City              *string
	Council           *string
	IcomplyContact    *string
	AfssLikely        *string
	LeaseTypeCategory *string

	AfssDueMonth      *int
	TenantFscDueMonth *int
	InspectionMonth   *int
}

// Registry holds one StationRecord per resolved key, preserving the order in
// which keys were first seen so station ids come out the same on every run.
type Registry struct {
	records map[string]*StationRecord
	keys    []string
}

func NewRegistry() *Registry {
	return &Registry{records: map[string]*StationRecord{}}
}

// Ensure returns the record for key, creating it with the given display name
// on first sight. The display name of an existing record never changes.
func (r *Registry) Ensure(key, name string) *StationRecord {
	if rec, ok := r.records[key]; ok {
		return rec
	}
	rec := &StationRecord{Name: name}
	r.records[key] = rec
	r.keys = append(r.keys, key)
	return rec
}

func (r *Registry) Get(key string) *StationRecord {
	return r.records[key]
}

func (r *Registry) Has(key string) bool {
	_, ok := r.records[key]
	return ok
}

// Keys returns the keys in first-seen order.
func (r *Registry) Keys() []string {
	return r.keys
}

func (r *Registry) Len() int {
	return len(r.keys)
}

func setString(dst **string, v *string) {
	if *dst == nil && v != nil {
		*dst = v
	}
}

func setInt(dst **int, v *int) {
	if *dst == nil && v != nil {
		*dst = v
	}
}
