package flow

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/opportunity-cli/internal/estimate"
	"github.com/sells-group/opportunity-cli/internal/model"
)

// Reduce is the pure, total transition function: given the current state and
// a message it returns exactly one next state and never mutates the prior
// state in place. Messages irrelevant to the current state are ignored
// silently and logged at debug level; async completion messages whose token
// does not match the active state's token are dropped as stale responses.
func Reduce(state State, msg Msg) State {
	// Global transitions first: these apply from any state.
	switch m := msg.(type) {
	case StartOver:
		return RestaurantSearch{}
	case Fail:
		return Failed{Message: m.Message, Prev: state}
	}

	switch s := state.(type) {
	case RestaurantSearch:
		return reduceSearch(s, msg)
	case Loading:
		return reduceLoading(s, msg)
	case SocialDetection:
		return reduceDetection(s, msg)
	case DataEntry:
		return reduceDataEntry(s, msg)
	case Analysis:
		return reduceAnalysis(s, msg)
	case Failed:
		if _, ok := msg.(Resume); ok && s.Prev != nil {
			return s.Prev
		}
		return ignore(s, msg)
	default:
		return ignore(state, msg)
	}
}

func reduceSearch(s RestaurantSearch, msg Msg) State {
	switch m := msg.(type) {
	case SearchSubmitted:
		return Loading{Query: m.Query, Token: m.Token}
	case RestaurantSelected:
		return SocialDetection{Restaurant: m.Restaurant, Token: m.Token}
	default:
		return ignore(s, msg)
	}
}

func reduceLoading(s Loading, msg Msg) State {
	switch m := msg.(type) {
	case SearchCompleted:
		if m.Token != s.Token {
			return stale(s, msg, m.Token)
		}
		return RestaurantSearch{Query: s.Query, Results: m.Results}
	case SearchFailed:
		if m.Token != s.Token {
			return stale(s, msg, m.Token)
		}
		// Search failure is non-blocking: back to the query form.
		return RestaurantSearch{Query: s.Query}
	default:
		return ignore(s, msg)
	}
}

func reduceDetection(s SocialDetection, msg Msg) State {
	switch m := msg.(type) {
	case DetectionSucceeded:
		if m.Token != s.Token {
			return stale(s, msg, m.Token)
		}
		snap := model.NewSnapshot(s.Restaurant)
		snap.Instagram = m.Instagram
		snap.Facebook = m.Facebook
		return DataEntry{Snapshot: snap}
	case DetectionFailed:
		if m.Token != s.Token {
			return stale(s, msg, m.Token)
		}
		zap.L().Info("flow: social detection failed, continuing with defaults",
			zap.String("restaurant", s.Restaurant.Name),
			zap.String("reason", m.Reason),
		)
		return DataEntry{Snapshot: model.NewSnapshot(s.Restaurant)}
	case DetectionSkipped:
		return DataEntry{Snapshot: model.NewSnapshot(s.Restaurant)}
	default:
		return ignore(s, msg)
	}
}

func reduceDataEntry(s DataEntry, msg Msg) State {
	snap := s.Snapshot.Clone()

	switch m := msg.(type) {
	case SetRevenue:
		snap.MonthlyRevenue = m.Value
	case SetAvgTicket:
		snap.AvgTicket = m.Value
	case SetTransactions:
		snap.MonthlyTransactions = m.Value
	case SetListSize:
		switch m.List {
		case "sms":
			snap.SMSListSize = m.Value
		case "email":
			snap.EmailListSize = m.Value
		default:
			return Failed{Message: fmt.Sprintf("unknown list %q", m.List), Prev: s}
		}
	case SetSMSCampaigns:
		snap.SMSCampaigns = m.Value
	case SetPosition:
		switch m.Surface {
		case "local_pack":
			snap.LocalPackPosition = m.Value
		case "organic":
			snap.OrganicPosition = m.Value
		default:
			return Failed{Message: fmt.Sprintf("unknown surface %q", m.Surface), Prev: s}
		}
	case SetFollowers:
		switch m.Platform {
		case model.PlatformInstagram:
			snap.Instagram.Followers = m.Value
		case model.PlatformFacebook:
			snap.Facebook.Followers = m.Value
		default:
			return Failed{Message: fmt.Sprintf("unknown platform %q", m.Platform), Prev: s}
		}
	case AddKeyword:
		snap.Keywords = append(snap.Keywords, m.Entry)
	case UpdateKeyword:
		if m.Index < 0 || m.Index >= len(snap.Keywords) {
			return Failed{Message: fmt.Sprintf("keyword index %d out of range", m.Index), Prev: s}
		}
		snap.Keywords[m.Index] = m.Entry
	case RemoveKeyword:
		if m.Index < 0 || m.Index >= len(snap.Keywords) {
			return Failed{Message: fmt.Sprintf("keyword index %d out of range", m.Index), Prev: s}
		}
		snap.Keywords = append(snap.Keywords[:m.Index], snap.Keywords[m.Index+1:]...)
	case SetToggle:
		switch m.Toggle {
		case "direct_mail":
			snap.UsesDirectMail = m.Value
		case "third_party":
			snap.UsesThirdParty = m.Value
		case "loyalty":
			snap.HasLoyaltyProgram = m.Value
		default:
			return Failed{Message: fmt.Sprintf("unknown toggle %q", m.Toggle), Prev: s}
		}
	case SetRadius:
		snap.ServiceRadiusMiles = m.Value
	case SetMailings:
		snap.MailingsPerMonth = m.Value
	case SetThirdPartyOrders:
		snap.ThirdPartyOrders = m.Value
	case SetLoyaltyMembers:
		snap.LoyaltyMembers = m.Value
	case RunAnalysis:
		return Analysis{
			Snapshot: s.Snapshot,
			Result:   estimate.Aggregate(s.Snapshot),
			Levers:   model.LeverState{},
		}
	default:
		return ignore(s, msg)
	}

	return DataEntry{Snapshot: snap}
}

func reduceAnalysis(s Analysis, msg Msg) State {
	switch m := msg.(type) {
	case ToggleLever:
		levers := s.Levers.Clone()
		levers[m.Lever] = !levers[m.Lever]
		// Levers are what-ifs for the presentation layer only; the stored
		// result stays as computed.
		return Analysis{Snapshot: s.Snapshot, Result: s.Result, Levers: levers}
	default:
		return ignore(s, msg)
	}
}

func ignore(state State, msg Msg) State {
	zap.L().Debug("flow: message ignored in current state",
		zap.String("state", state.Name()),
		zap.String("msg", msg.Kind()),
	)
	return state
}

func stale(state State, msg Msg, token string) State {
	zap.L().Debug("flow: stale completion dropped",
		zap.String("state", state.Name()),
		zap.String("msg", msg.Kind()),
		zap.String("token", token),
	)
	return state
}
