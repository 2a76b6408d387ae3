package auth

import "testing"

func TestAuthorize(t *testing.T) {
	testCases := []struct {
		name      string
		actorRole string
		actorID   string
		ownerID   string
		want      Capability
	}{
		{
			name:      "admin over any resource",
			actorRole: RoleAdmin,
			actorID:   "a",
			ownerID:   "b",
			want:      CapabilityAdmin,
		},
		{
			name:      "admin over own resource still admin",
			actorRole: RoleAdmin,
			actorID:   "a",
			ownerID:   "a",
			want:      CapabilityAdmin,
		},
		{
			name:      "user over own resource",
			actorRole: RoleUser,
			actorID:   "a",
			ownerID:   "a",
			want:      CapabilityOwner,
		},
		{
			name:      "user over someone else's resource",
			actorRole: RoleUser,
			actorID:   "a",
			ownerID:   "b",
			want:      CapabilityNone,
		},
		{
			name:      "empty actor never owns",
			actorRole: RoleUser,
			actorID:   "",
			ownerID:   "",
			want:      CapabilityNone,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := Authorize(testCase.actorRole, testCase.actorID, testCase.ownerID)
			if got != testCase.want {
				t.Fatalf("expected capability %v, got %v", testCase.want, got)
			}
		})
	}
}
