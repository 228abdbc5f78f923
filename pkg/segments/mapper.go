package segments

import (
	"fmt"

	"github.com/aretw0/meander/pkg/domain"
)

// Assignment binds a customer to a derived segment label.
type Assignment struct {
	CustomerID string `json:"customer_id"`
	Segment    string `json:"segment"`
}

// Mapper clusters customers by their action frequency vectors and assigns
// each customer a segment label of the form "segment-<cluster>".
type Mapper struct {
	k       int
	km      *KMeans
	matrix  *ActionMatrix
	bySeg   map[string]string
	cluster []int
}

// NewMapper creates a mapper producing k segments.
func NewMapper(k int) *Mapper {
	return &Mapper{k: k, km: NewKMeans(k)}
}

// Fit pivots the event log and clusters the customers.
func (m *Mapper) Fit(events []domain.ActionEvent) error {
	if len(events) == 0 {
		return fmt.Errorf("empty event log: %w", domain.ErrInvalidArgument)
	}

	m.matrix = BuildActionMatrix(events)
	if err := m.km.Fit(m.matrix.Counts); err != nil {
		return err
	}

	m.cluster = make([]int, len(m.matrix.Customers))
	m.bySeg = make(map[string]string, len(m.matrix.Customers))
	for i, row := range m.matrix.Counts {
		c, err := m.km.Predict(row)
		if err != nil {
			return err
		}
		m.cluster[i] = c
		m.bySeg[m.matrix.Customers[i]] = segmentLabel(c)
	}
	return nil
}

// Assignments returns every customer's segment, sorted by customer ID.
func (m *Mapper) Assignments() ([]Assignment, error) {
	if m.matrix == nil {
		return nil, domain.ErrNotFitted
	}

	out := make([]Assignment, len(m.matrix.Customers))
	for i, customer := range m.matrix.Customers {
		out[i] = Assignment{CustomerID: customer, Segment: segmentLabel(m.cluster[i])}
	}
	return out, nil
}

// SegmentOf returns the fitted segment of a customer.
func (m *Mapper) SegmentOf(customerID string) (string, error) {
	if m.matrix == nil {
		return "", domain.ErrNotFitted
	}
	seg, ok := m.bySeg[customerID]
	if !ok {
		return "", fmt.Errorf("customer %q: %w", customerID, domain.ErrUnknownSegment)
	}
	return seg, nil
}

func segmentLabel(cluster int) string {
	return fmt.Sprintf("segment-%d", cluster)
}
