package service

import "vidtube/internal/shared"

// CanModify reports whether actor may change a resource recorded as owned by
// ownerID. Identity is compared by exact id; no actor means no access.
func CanModify(ownerID string, actor *shared.Actor) bool {
	if actor == nil || actor.UserID == "" {
		return false
	}
	return ownerID == actor.UserID
}
