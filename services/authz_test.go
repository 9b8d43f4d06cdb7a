package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	owners := Owners{ClientID: 1, FreelancerID: 2}
	client := Principal{UserID: 1, Role: "client"}
	freelancer := Principal{UserID: 2, Role: "freelancer"}
	outsider := Principal{UserID: 3, Role: "client"}

	cases := []struct {
		name    string
		action  Action
		p       Principal
		allowed bool
	}{
		{"client accepts proposal", ActionAcceptProposal, client, true},
		{"freelancer cannot accept", ActionAcceptProposal, freelancer, false},
		{"outsider cannot accept", ActionAcceptProposal, outsider, false},
		{"client funds escrow", ActionCreateEscrow, client, true},
		{"freelancer cannot fund escrow", ActionCreateEscrow, freelancer, false},
		{"either party settles", ActionSettlePayment, freelancer, true},
		{"outsider cannot settle", ActionSettlePayment, outsider, false},
		{"freelancer completes milestone", ActionCompleteMilestone, freelancer, true},
		{"client cannot complete milestone", ActionCompleteMilestone, client, false},
		{"client pays milestone", ActionPayMilestone, client, true},
		{"either party views contract", ActionViewContract, client, true},
		{"outsider cannot view contract", ActionViewContract, outsider, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Authorize(tc.action, owners, tc.p)
			require.Equal(t, tc.allowed, d.Allowed)
			if !tc.allowed {
				require.NotEmpty(t, d.Reason)
			}
		})
	}

	d := Authorize(Action("nope"), owners, client)
	require.False(t, d.Allowed)
}
