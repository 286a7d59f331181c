package httpapi

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/dailypantry/pantry-assistant/internal/session"
)

// Tool names accepted on the wire, one per session request variant.
const (
	toolAddItem   = "add_item"
	toolListCart  = "list_cart"
	toolSetSlot   = "set_slot"
	toolGetStatus = "get_status"
	toolFinalize  = "finalize"
)

// toolRequest is the decoded wire envelope: session routing fields plus the
// union of all variant arguments. Tag dispatch happens after decode.
type toolRequest struct {
	SessionID string
	Mode      string
	Request   session.Request
}

// decodeToolRequest parses a flat JSON tool call and builds the tagged
// request variant. Unknown keys are skipped; unknown tools are rejected.
func decodeToolRequest(data []byte) (*toolRequest, error) {
	var (
		req      toolRequest
		tool     string
		name     string
		quantity int
		notes    string
		slot     string
		value    string
		custName string
		custAddr string
	)

	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "session_id":
			req.SessionID, err = d.Str()
		case "mode":
			req.Mode, err = d.Str()
		case "tool":
			tool, err = d.Str()
		case "name":
			name, err = d.Str()
		case "quantity":
			quantity, err = d.Int()
		case "notes":
			notes, err = d.Str()
		case "slot":
			slot, err = d.Str()
		case "value":
			value, err = d.Str()
		case "customer_name":
			custName, err = d.Str()
		case "customer_address":
			custAddr, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		return nil, errors.Wrap(err, "malformed tool request")
	}

	if req.SessionID == "" {
		return nil, errors.New("session_id required")
	}

	switch tool {
	case toolAddItem:
		req.Request = session.AddItemRequest{Name: name, Quantity: quantity, Notes: notes}
	case toolListCart:
		req.Request = session.ListCartRequest{}
	case toolSetSlot:
		req.Request = session.SetSlotRequest{Slot: slot, Value: value}
	case toolGetStatus:
		req.Request = session.GetStatusRequest{}
	case toolFinalize:
		req.Request = session.FinalizeRequest{CustomerName: custName, CustomerAddress: custAddr}
	default:
		return nil, errors.Errorf("unknown tool %q", tool)
	}

	return &req, nil
}
