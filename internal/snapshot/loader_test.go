package snapshot

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/dues-engine/internal/domain"
)

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatOf("export.yaml"))
	assert.Equal(t, FormatYAML, FormatOf("EXPORT.YML"))
	assert.Equal(t, FormatJSON, FormatOf("export.json"))
	assert.Equal(t, FormatJSON, FormatOf("export"))
}

func TestLoad(t *testing.T) {
	for _, path := range []string{"testdata/snapshot.json", "testdata/snapshot.yaml"} {
		t.Run(path, func(t *testing.T) {
			snap, err := Load(path)
			require.NoError(t, err)

			require.Len(t, snap.Members, 2)
			require.Len(t, snap.Collectors, 1)
			require.Len(t, snap.PaymentRequests, 1)
			require.Len(t, snap.RoleAssignments, 2)

			m1 := snap.Members[0]
			assert.Equal(t, "Ahmed", m1.CollectorName())
			assert.True(t, m1.YearlyPaymentAmount.Valid)
			assert.True(t, m1.YearlyPaymentAmount.Decimal.Equal(decimal.NewFromInt(40)))
			assert.True(t, m1.YearlyPaymentDueDate.Valid)
			assert.True(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Equal(m1.YearlyPaymentDueDate.Time))
			assert.False(t, m1.EmergencyCollectionAmount.Valid)
			assert.False(t, m1.EmergencyCollectionDueDate.Valid)
			assert.True(t, m1.LastYearlyPaymentAmount.Decimal.Equal(decimal.NewFromInt(40)))

			m2 := snap.Members[1]
			assert.Nil(t, m2.Collector)
			assert.False(t, m2.YearlyPaymentDueDate.Valid)

			p := snap.PaymentRequests[0]
			assert.True(t, p.Amount.Equal(decimal.NewFromInt(40)))
			assert.True(t, p.CreatedAt.Valid)

			assert.Equal(t, []domain.Role{domain.RoleCollector, domain.RoleMember}, snap.Collectors[0].Roles)
			assert.Equal(t, domain.RoleMember, snap.RoleAssignments[1].Role)

			want := []string{`member m-2: yearly_payment_due_date="not-a-date"`}
			if diff := cmp.Diff(want, snap.MalformedDates()); diff != "" {
				t.Errorf("MalformedDates() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open snapshot")
}

func TestDecode(t *testing.T) {
	t.Run("empty yaml document", func(t *testing.T) {
		snap, err := Decode(strings.NewReader(""), FormatYAML)
		require.NoError(t, err)
		assert.Empty(t, snap.Members)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`{"members": [`), FormatJSON)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode snapshot")
	})

	t.Run("unquoted yaml scalars keep their text", func(t *testing.T) {
		doc := `
members:
  - id: 17
    member_number: 0012
    full_name: Omar Farooq
    yearly_payment_amount: 40.50
    yearly_payment_due_date: 2025-03-01
    emergency_collection_amount: 1e2
    created_at: 2024-11-05T08:00:00Z
collectors:
  - id: 3
    name: Ahmed
    active: true
`
		snap, err := Decode(strings.NewReader(doc), FormatYAML)
		require.NoError(t, err)
		require.Len(t, snap.Members, 1)
		require.Len(t, snap.Collectors, 1)

		m := snap.Members[0]
		assert.Equal(t, "17", m.ID)
		assert.Equal(t, "0012", m.MemberNumber)
		assert.Equal(t, "40.5", m.YearlyPaymentAmount.Decimal.String())
		assert.True(t, m.EmergencyCollectionAmount.Decimal.Equal(decimal.NewFromInt(100)))
		assert.True(t, m.YearlyPaymentDueDate.Valid)
		assert.True(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).Equal(m.YearlyPaymentDueDate.Time))
		assert.True(t, m.CreatedAt.Valid)

		assert.Equal(t, "3", snap.Collectors[0].ID)
		assert.True(t, snap.Collectors[0].Active)
	})

	t.Run("anchors and aliases", func(t *testing.T) {
		doc := `
collectors:
  - &ahmed
    id: c-1
    name: Ahmed
  - *ahmed
`
		snap, err := Decode(strings.NewReader(doc), FormatYAML)
		require.NoError(t, err)
		require.Len(t, snap.Collectors, 2)
		assert.Equal(t, "Ahmed", snap.Collectors[1].Name)
	})

	t.Run("non-string date is treated as missing", func(t *testing.T) {
		snap, err := Decode(strings.NewReader(`{"members":[{"id":"m-1","yearly_payment_due_date":20250101}]}`), FormatJSON)
		require.NoError(t, err)
		require.Len(t, snap.Members, 1)
		assert.False(t, snap.Members[0].YearlyPaymentDueDate.Valid)
		assert.True(t, snap.Members[0].YearlyPaymentDueDate.Malformed())
	})
}
