package flow

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/opportunity-cli/internal/model"
)

// DecodeMsg parses a client-submitted message by kind. Lookup completions
// (search_completed, detection_succeeded, ...) are session-internal and are
// rejected: only the goroutine that started a lookup may complete it. Search
// and selection messages get a fresh token here, same as Submit and Select.
func DecodeMsg(kind string, payload []byte) (Msg, error) {
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	switch kind {
	case "search_submitted":
		var p struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, eris.Wrap(err, "flow: decode search_submitted")
		}
		return SearchSubmitted{Query: p.Query, Token: uuid.New().String()}, nil

	case "restaurant_selected":
		var p struct {
			Restaurant model.Restaurant `json:"restaurant"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, eris.Wrap(err, "flow: decode restaurant_selected")
		}
		return RestaurantSelected{Restaurant: p.Restaurant, Token: uuid.New().String()}, nil

	case "detection_skipped":
		return DetectionSkipped{}, nil

	case "set_revenue":
		p, err := floatPayload(payload, kind)
		if err != nil {
			return nil, err
		}
		return SetRevenue{Value: p}, nil

	case "set_avg_ticket":
		p, err := floatPayload(payload, kind)
		if err != nil {
			return nil, err
		}
		return SetAvgTicket{Value: p}, nil

	case "set_transactions":
		p, err := intPayload(payload, kind)
		if err != nil {
			return nil, err
		}
		return SetTransactions{Value: p}, nil

	case "set_list_size":
		var p struct {
			List  string `json:"list"`
			Value int    `json:"value"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, eris.Wrap(err, "flow: decode set_list_size")
		}
		return SetListSize{List: p.List, Value: p.Value}, nil

	case "set_sms_campaigns":
		p, err := intPayload(payload, kind)
		if err != nil {
			return nil, err
		}
		return SetSMSCampaigns{Value: p}, nil

	case "set_position":
		var p struct {
			Surface string `json:"surface"`
			Value   int    `json:"value"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, eris.Wrap(err, "flow: decode set_position")
		}
		return SetPosition{Surface: p.Surface, Value: p.Value}, nil

	case "set_followers":
		var p struct {
			Platform model.Platform `json:"platform"`
			Value    int            `json:"value"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, eris.Wrap(err, "flow: decode set_followers")
		}
		return SetFollowers{Platform: p.Platform, Value: p.Value}, nil

	case "add_keyword":
		var p struct {
			Entry model.KeywordEntry `json:"entry"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, eris.Wrap(err, "flow: decode add_keyword")
		}
		return AddKeyword{Entry: p.Entry}, nil

	case "update_keyword":
		var p struct {
			Index int                `json:"index"`
			Entry model.KeywordEntry `json:"entry"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, eris.Wrap(err, "flow: decode update_keyword")
		}
		return UpdateKeyword{Index: p.Index, Entry: p.Entry}, nil

	case "remove_keyword":
		var p struct {
			Index int `json:"index"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, eris.Wrap(err, "flow: decode remove_keyword")
		}
		return RemoveKeyword{Index: p.Index}, nil

	case "set_toggle":
		var p struct {
			Toggle string `json:"toggle"`
			Value  bool   `json:"value"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, eris.Wrap(err, "flow: decode set_toggle")
		}
		return SetToggle{Toggle: p.Toggle, Value: p.Value}, nil

	case "set_radius":
		p, err := floatPayload(payload, kind)
		if err != nil {
			return nil, err
		}
		return SetRadius{Value: p}, nil

	case "set_mailings":
		p, err := floatPayload(payload, kind)
		if err != nil {
			return nil, err
		}
		return SetMailings{Value: p}, nil

	case "set_third_party_orders":
		p, err := intPayload(payload, kind)
		if err != nil {
			return nil, err
		}
		return SetThirdPartyOrders{Value: p}, nil

	case "set_loyalty_members":
		p, err := intPayload(payload, kind)
		if err != nil {
			return nil, err
		}
		return SetLoyaltyMembers{Value: p}, nil

	case "run_analysis":
		return RunAnalysis{}, nil

	case "toggle_lever":
		var p struct {
			Lever string `json:"lever"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, eris.Wrap(err, "flow: decode toggle_lever")
		}
		return ToggleLever{Lever: p.Lever}, nil

	case "resume":
		return Resume{}, nil

	case "start_over":
		return StartOver{}, nil

	default:
		return nil, eris.Errorf("flow: unknown or internal message kind %q", kind)
	}
}

func floatPayload(payload []byte, kind string) (float64, error) {
	var p struct {
		Value float64 `json:"value"`
	}
	if err := json.Unmarshal(payload, &p); err != nil {
		return 0, eris.Wrapf(err, "flow: decode %s", kind)
	}
	return p.Value, nil
}

func intPayload(payload []byte, kind string) (int, error) {
	var p struct {
		Value int `json:"value"`
	}
	if err := json.Unmarshal(payload, &p); err != nil {
		return 0, eris.Wrapf(err, "flow: decode %s", kind)
	}
	return p.Value, nil
}
