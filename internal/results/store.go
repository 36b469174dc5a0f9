package results

// TotalKey is the store key accumulating the across-queue totals.
const TotalKey = "total"

// Record is a single named value appended during a run, e.g.
// {CONTACTS_HANDLED: 42} or {QUEUE_NAME: "Support DE"}.
type Record struct {
	Name  string
	Value any
}

// Store collects per-queue records for one reporting run. Keys are the
// queue IDs plus TotalKey; records keep insertion order. A store is
// owned by exactly one run and discarded with it.
type Store struct {
	queues  []string
	records map[string][]Record
}

// New creates a store with one empty sequence per queue plus the total.
func New(queues []string) *Store {
	s := &Store{
		queues:  append([]string(nil), queues...),
		records: make(map[string][]Record, len(queues)+1),
	}
	for _, q := range queues {
		s.records[q] = nil
	}
	s.records[TotalKey] = nil
	return s
}

// Queues returns the queue IDs the store was initialized with.
func (s *Store) Queues() []string {
	return s.queues
}

// Append adds a record to the given key.
func (s *Store) Append(key, name string, value any) {
	s.records[key] = append(s.records[key], Record{Name: name, Value: value})
}

// AppendTotal adds a record to the total sequence.
func (s *Store) AppendTotal(name string, value any) {
	s.Append(TotalKey, name, value)
}

// Get returns the record sequence for a key.
func (s *Store) Get(key string) []Record {
	return s.records[key]
}

// Total returns the across-queue total sequence.
func (s *Store) Total() []Record {
	return s.records[TotalKey]
}
