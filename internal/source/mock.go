package source

import (
	"context"

	"demographics-insights-go/internal/types"
)

// MockSource serves a fixed population for demos (USE_MOCK_SOURCE=true).
type MockSource struct{}

func (MockSource) Fetch(ctx context.Context, segment string) ([]types.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Filter(mockPeople(), segment), nil
}

func mockPeople() []types.Person {
	age := func(n int) *int { return &n }
	mk := func(id, name, gender string, years *int, created string) types.Person {
		p := types.Person{ID: id, Name: name, Gender: gender, Age: years}
		if created != "" {
			c := created
			p.CreatedAt = &c
		}
		return p
	}
	return []types.Person{
		mk("m-001", "Amara", "female", age(23), "2025-01-12T09:30:00Z"),
		mk("m-002", "Bruno", "male", age(31), "2025-02-03T14:05:00Z"),
		mk("m-003", "Chloe", "female", age(27), "2025-03-21T18:45:00Z"),
		mk("m-004", "Dario", "male", age(45), ""),
		mk("m-005", "Elif", "female", age(16), "2025-04-02T08:00:00Z"),
		mk("m-006", "Farah", "female", nil, "2025-04-10T11:20:00Z"),
		mk("m-007", "Gus", "male", age(58), "2024-11-30T16:10:00Z"),
		mk("m-008", "Hana", "female", age(34), "2025-05-05T07:55:00Z"),
		mk("m-009", "Ivo", "male", nil, ""),
		mk("m-010", "Jade", "female", age(38), "2025-05-18T20:15:00Z"),
	}
}
