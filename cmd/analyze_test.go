package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshotFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSnapshot_YAML(t *testing.T) {
	path := writeSnapshotFile(t, "snap.yaml", `
restaurant:
  place_id: p1
  name: "Luigi's Pizzeria"
monthly_revenue: 42000
avg_ticket: 25
monthly_transactions: 1500
sms_list_size: 500
keywords:
  - keyword: best pizza
    search_volume: 2000
    current_position: 4
    target_position: 1
    is_local_pack: true
`)

	snap, err := loadSnapshot(path)
	require.NoError(t, err)

	assert.Equal(t, "Luigi's Pizzeria", snap.Restaurant.Name)
	assert.InDelta(t, 42000, snap.MonthlyRevenue, 1e-9)
	assert.Equal(t, 1500, snap.MonthlyTransactions)
	require.Len(t, snap.Keywords, 1)
	assert.Equal(t, "best pizza", snap.Keywords[0].Keyword)
	assert.True(t, snap.Keywords[0].IsLocalPack)
}

func TestLoadSnapshot_JSON(t *testing.T) {
	path := writeSnapshotFile(t, "snap.json", `{
		"restaurant": {"place_id": "p2", "name": "Taqueria Norte"},
		"monthly_revenue": 30000,
		"avg_ticket": 18,
		"uses_third_party": true,
		"third_party_orders": 400
	}`)

	snap, err := loadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, "Taqueria Norte", snap.Restaurant.Name)
	assert.True(t, snap.UsesThirdParty)
	assert.Equal(t, 400, snap.ThirdPartyOrders)
}

func TestLoadSnapshot_FileDefaults(t *testing.T) {
	// Cadence fields absent from the file keep the interactive defaults.
	path := writeSnapshotFile(t, "snap.yaml", `
monthly_revenue: 10000
`)

	snap, err := loadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, 4, snap.SMSCampaigns)
	assert.InDelta(t, 2.0, snap.LoyaltyVisitsPerMonth, 1e-9)
	assert.InDelta(t, 1.0, snap.MailingsPerMonth, 1e-9)
}

func TestLoadSnapshot_UnsupportedExtension(t *testing.T) {
	path := writeSnapshotFile(t, "snap.toml", `monthly_revenue = 1`)

	_, err := loadSnapshot(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported snapshot format")
}

func TestLoadSnapshot_MissingFile(t *testing.T) {
	_, err := loadSnapshot(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
