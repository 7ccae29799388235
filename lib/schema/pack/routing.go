// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/bureau-foundation/flowtypes/lib/canonical"
	"github.com/bureau-foundation/flowtypes/lib/codec"
	"github.com/bureau-foundation/flowtypes/lib/ref"
)

// RoutingKind discriminates the variants of [Routing].
type RoutingKind string

const (
	// RoutingNext continues at a single node.
	RoutingNext RoutingKind = "next"

	// RoutingBranch picks the next node by the status the node
	// finished with, falling back to an optional default.
	RoutingBranch RoutingKind = "branch"

	// RoutingEnd finishes the flow.
	RoutingEnd RoutingKind = "end"

	// RoutingReply finishes the flow and replies to the caller.
	RoutingReply RoutingKind = "reply"

	// RoutingCustom hands routing to the runtime with an opaque
	// payload.
	RoutingCustom RoutingKind = "custom"
)

// Routing decides where a flow continues after a node. Exactly the
// fields of the variant named by Kind are meaningful:
//   - RoutingNext: Next
//   - RoutingBranch: OnStatus and, optionally, Default
//   - RoutingEnd, RoutingReply: none
//   - RoutingCustom: Custom
//
// Build values with [NextRouting], [BranchRouting], [EndRouting],
// [ReplyRouting], or [CustomRouting].
type Routing struct {
	Kind     RoutingKind
	Next     ref.NodeID
	OnStatus map[string]ref.NodeID
	Default  ref.NodeID
	Custom   canonical.Value
}

// NextRouting continues at node.
func NextRouting(node ref.NodeID) Routing {
	return Routing{Kind: RoutingNext, Next: node}
}

// BranchRouting continues at onStatus[status], or at fallback when no
// entry matches. A zero fallback means the branch has no default.
func BranchRouting(onStatus map[string]ref.NodeID, fallback ref.NodeID) Routing {
	return Routing{Kind: RoutingBranch, OnStatus: onStatus, Default: fallback}
}

// EndRouting finishes the flow.
func EndRouting() Routing { return Routing{Kind: RoutingEnd} }

// ReplyRouting finishes the flow with a reply.
func ReplyRouting() Routing { return Routing{Kind: RoutingReply} }

// CustomRouting delegates routing to the runtime.
func CustomRouting(payload canonical.Value) Routing {
	return Routing{Kind: RoutingCustom, Custom: payload}
}

// Targets returns the nodes the routing can continue at, in a stable
// order: the Next node, or the branch targets sorted by status
// followed by the default.
func (r Routing) Targets() []ref.NodeID {
	switch r.Kind {
	case RoutingNext:
		return []ref.NodeID{r.Next}
	case RoutingBranch:
		var targets []ref.NodeID
		for _, status := range slices.Sorted(maps.Keys(r.OnStatus)) {
			targets = append(targets, r.OnStatus[status])
		}
		if !r.Default.IsZero() {
			targets = append(targets, r.Default)
		}
		return targets
	default:
		return nil
	}
}

// Validate checks that the fields required by Kind are set.
func (r Routing) Validate() error {
	switch r.Kind {
	case RoutingNext:
		if r.Next.IsZero() {
			return fmt.Errorf("next routing has no target node")
		}
	case RoutingBranch:
		for status, target := range r.OnStatus {
			if target.IsZero() {
				return fmt.Errorf("branch routing status %q has no target node", status)
			}
		}
		if len(r.OnStatus) == 0 && r.Default.IsZero() {
			return fmt.Errorf("branch routing has neither status targets nor a default")
		}
	case RoutingEnd, RoutingReply:
	case RoutingCustom:
		if r.Custom.IsZero() {
			return fmt.Errorf("custom routing has no payload")
		}
	case "":
		return fmt.Errorf("routing kind is required")
	default:
		return fmt.Errorf("unknown routing kind %q", r.Kind)
	}
	return nil
}

// Routing serializes as an externally tagged variant: unit variants
// are bare strings ("end", "reply"), the others single-key maps:
//
//	{"next": {"node_id": "b"}}
//	{"branch": {"on_status": {"ok": "b"}, "default": "c"}}
//	{"custom": <document>}
//
// The same shape is used for JSON and CBOR.

type nextBody struct {
	NodeID ref.NodeID `json:"node_id"`
}

type branchBody struct {
	OnStatus map[string]ref.NodeID `json:"on_status"`
	Default  *ref.NodeID           `json:"default,omitempty"`
}

// tagged returns the externally tagged form of r.
func (r Routing) tagged() (any, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	switch r.Kind {
	case RoutingNext:
		return map[string]any{string(RoutingNext): nextBody{NodeID: r.Next}}, nil
	case RoutingBranch:
		body := branchBody{OnStatus: r.OnStatus}
		if body.OnStatus == nil {
			body.OnStatus = map[string]ref.NodeID{}
		}
		if !r.Default.IsZero() {
			fallback := r.Default
			body.Default = &fallback
		}
		return map[string]any{string(RoutingBranch): body}, nil
	case RoutingCustom:
		return map[string]any{string(RoutingCustom): r.Custom}, nil
	default:
		return string(r.Kind), nil
	}
}

// MarshalJSON implements json.Marshaler.
func (r Routing) MarshalJSON() ([]byte, error) {
	form, err := r.tagged()
	if err != nil {
		return nil, err
	}
	return json.Marshal(form)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Routing) UnmarshalJSON(data []byte) error {
	var unit string
	if err := json.Unmarshal(data, &unit); err == nil {
		return r.setUnit(unit)
	}
	var variants map[string]json.RawMessage
	if err := json.Unmarshal(data, &variants); err != nil {
		return fmt.Errorf("routing must be a string or a single-key object: %w", err)
	}
	kind, body, err := singleVariant(variants)
	if err != nil {
		return err
	}
	return r.setVariant(kind, func(v any) error { return json.Unmarshal(body, v) })
}

// MarshalCBOR implements cbor.Marshaler.
func (r Routing) MarshalCBOR() ([]byte, error) {
	form, err := r.tagged()
	if err != nil {
		return nil, err
	}
	return codec.Marshal(form)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (r *Routing) UnmarshalCBOR(data []byte) error {
	var unit string
	if err := codec.Unmarshal(data, &unit); err == nil {
		return r.setUnit(unit)
	}
	var variants map[string]codec.RawMessage
	if err := codec.Unmarshal(data, &variants); err != nil {
		return fmt.Errorf("routing must be a text string or a single-key map: %w", err)
	}
	kind, body, err := singleVariant(variants)
	if err != nil {
		return err
	}
	return r.setVariant(kind, func(v any) error { return codec.Unmarshal(body, v) })
}

func singleVariant[Raw any](variants map[string]Raw) (RoutingKind, Raw, error) {
	var zero Raw
	if len(variants) != 1 {
		return "", zero, fmt.Errorf("routing must have exactly one variant, got %d", len(variants))
	}
	for kind, body := range variants {
		return RoutingKind(kind), body, nil
	}
	return "", zero, nil
}

func (r *Routing) setUnit(unit string) error {
	switch RoutingKind(unit) {
	case RoutingEnd, RoutingReply:
		*r = Routing{Kind: RoutingKind(unit)}
		return nil
	default:
		return fmt.Errorf("unknown unit routing %q", unit)
	}
}

func (r *Routing) setVariant(kind RoutingKind, decode func(any) error) error {
	switch kind {
	case RoutingNext:
		var body nextBody
		if err := decode(&body); err != nil {
			return fmt.Errorf("next routing: %w", err)
		}
		*r = NextRouting(body.NodeID)
	case RoutingBranch:
		var body branchBody
		if err := decode(&body); err != nil {
			return fmt.Errorf("branch routing: %w", err)
		}
		var fallback ref.NodeID
		if body.Default != nil {
			fallback = *body.Default
		}
		*r = BranchRouting(body.OnStatus, fallback)
	case RoutingCustom:
		var payload canonical.Value
		if err := decode(&payload); err != nil {
			return fmt.Errorf("custom routing: %w", err)
		}
		*r = CustomRouting(payload)
	default:
		return fmt.Errorf("unknown routing variant %q", kind)
	}
	return r.Validate()
}
