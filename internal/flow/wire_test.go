package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/opportunity-cli/internal/model"
)

func TestDecodeMsg_SearchGetsFreshToken(t *testing.T) {
	m1, err := DecodeMsg("search_submitted", []byte(`{"query": "pizza near me"}`))
	require.NoError(t, err)
	m2, err := DecodeMsg("search_submitted", []byte(`{"query": "pizza near me"}`))
	require.NoError(t, err)

	s1 := m1.(SearchSubmitted)
	s2 := m2.(SearchSubmitted)
	assert.Equal(t, "pizza near me", s1.Query)
	assert.NotEmpty(t, s1.Token)
	assert.NotEqual(t, s1.Token, s2.Token, "each submission must carry its own token")
}

func TestDecodeMsg_RestaurantSelected(t *testing.T) {
	m, err := DecodeMsg("restaurant_selected", []byte(`{"restaurant": {"place_id": "p1", "name": "Luigi's"}}`))
	require.NoError(t, err)

	sel := m.(RestaurantSelected)
	assert.Equal(t, "p1", sel.Restaurant.PlaceID)
	assert.Equal(t, "Luigi's", sel.Restaurant.Name)
	assert.NotEmpty(t, sel.Token)
}

func TestDecodeMsg_FieldUpdates(t *testing.T) {
	cases := []struct {
		kind    string
		payload string
		want    Msg
	}{
		{"set_revenue", `{"value": 42000}`, SetRevenue{Value: 42000}},
		{"set_avg_ticket", `{"value": 27.5}`, SetAvgTicket{Value: 27.5}},
		{"set_transactions", `{"value": 1500}`, SetTransactions{Value: 1500}},
		{"set_list_size", `{"list": "sms", "value": 800}`, SetListSize{List: "sms", Value: 800}},
		{"set_sms_campaigns", `{"value": 6}`, SetSMSCampaigns{Value: 6}},
		{"set_position", `{"surface": "organic", "value": 7}`, SetPosition{Surface: "organic", Value: 7}},
		{"set_followers", `{"platform": "instagram", "value": 2400}`, SetFollowers{Platform: model.PlatformInstagram, Value: 2400}},
		{"set_toggle", `{"toggle": "loyalty", "value": true}`, SetToggle{Toggle: "loyalty", Value: true}},
		{"set_radius", `{"value": 3.5}`, SetRadius{Value: 3.5}},
		{"set_mailings", `{"value": 2}`, SetMailings{Value: 2}},
		{"set_third_party_orders", `{"value": 300}`, SetThirdPartyOrders{Value: 300}},
		{"set_loyalty_members", `{"value": 120}`, SetLoyaltyMembers{Value: 120}},
		{"remove_keyword", `{"index": 2}`, RemoveKeyword{Index: 2}},
		{"toggle_lever", `{"lever": "sms"}`, ToggleLever{Lever: "sms"}},
	}

	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			m, err := DecodeMsg(tc.kind, []byte(tc.payload))
			require.NoError(t, err)
			assert.Equal(t, tc.want, m)
		})
	}
}

func TestDecodeMsg_Keywords(t *testing.T) {
	m, err := DecodeMsg("add_keyword", []byte(`{"entry": {"keyword": "best pizza", "search_volume": 2000, "current_position": 4, "is_local_pack": true}}`))
	require.NoError(t, err)

	add := m.(AddKeyword)
	assert.Equal(t, "best pizza", add.Entry.Keyword)
	assert.Equal(t, 2000, add.Entry.SearchVolume)
	assert.True(t, add.Entry.IsLocalPack)

	m, err = DecodeMsg("update_keyword", []byte(`{"index": 1, "entry": {"keyword": "pizza delivery"}}`))
	require.NoError(t, err)
	upd := m.(UpdateKeyword)
	assert.Equal(t, 1, upd.Index)
	assert.Equal(t, "pizza delivery", upd.Entry.Keyword)
}

func TestDecodeMsg_NoPayloadKinds(t *testing.T) {
	for _, kind := range []string{"detection_skipped", "run_analysis", "resume", "start_over"} {
		m, err := DecodeMsg(kind, nil)
		require.NoError(t, err, kind)
		assert.Equal(t, kind, m.Kind())
	}
}

func TestDecodeMsg_RejectsInternalKinds(t *testing.T) {
	for _, kind := range []string{"search_completed", "search_failed", "detection_succeeded", "detection_failed", "fail"} {
		_, err := DecodeMsg(kind, []byte(`{}`))
		assert.Error(t, err, kind)
	}
}

func TestDecodeMsg_UnknownKind(t *testing.T) {
	_, err := DecodeMsg("launch_missiles", []byte(`{}`))
	require.Error(t, err)
}

func TestDecodeMsg_MalformedPayload(t *testing.T) {
	_, err := DecodeMsg("set_revenue", []byte(`{"value": "not a number"}`))
	require.Error(t, err)
}
