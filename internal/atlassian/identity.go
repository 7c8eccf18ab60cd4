package atlassian

import (
	"regexp"

	"github.com/ternarybob/arbor"
)

// NormalizedUser is the canonical user shape regardless of deployment type.
// ID is the accountId on Cloud and the username (falling back to the legacy
// user key) on Server/DC. Original retains the raw source object for callers
// that need deployment-specific fields.
type NormalizedUser struct {
	ID             string                 `json:"id"`
	DisplayName    string                 `json:"displayName"`
	EmailAddress   string                 `json:"emailAddress,omitempty"`
	AvatarURLs     map[string]string      `json:"avatarUrls,omitempty"`
	AccountType    string                 `json:"accountType,omitempty"`
	Active         bool                   `json:"active"`
	Original       map[string]interface{} `json:"original,omitempty"`
	DeploymentType DeploymentType         `json:"deploymentType"`
}

var (
	cloudAccountIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	serverUsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// UserIdentifier extracts the primary identifier from a raw user object.
// Cloud requires accountId with no fallback; Server/DC prefers name and falls
// back to key. The second return is false when no usable identifier exists.
func UserIdentifier(user map[string]interface{}, deployment DeploymentType) (string, bool) {
	if user == nil {
		return "", false
	}

	if deployment == DeploymentCloud {
		if accountID, ok := user["accountId"].(string); ok && accountID != "" {
			return accountID, true
		}
		return "", false
	}

	if name, ok := user["name"].(string); ok && name != "" {
		return name, true
	}
	if key, ok := user["key"].(string); ok && key != "" {
		return key, true
	}
	return "", false
}

// NormalizeUser converts a raw user object into the canonical shape. It
// returns nil when no identifier can be extracted; callers decide whether a
// missing user is fatal to their operation.
func NormalizeUser(user map[string]interface{}, deployment DeploymentType) *NormalizedUser {
	id, ok := UserIdentifier(user, deployment)
	if !ok {
		return nil
	}

	displayName, _ := user["displayName"].(string)
	if displayName == "" {
		if name, ok := user["name"].(string); ok && name != "" {
			displayName = name
		} else {
			displayName = id
		}
	}

	normalized := &NormalizedUser{
		ID:             id,
		DisplayName:    displayName,
		DeploymentType: deployment,
		Original:       user,
		// Absent means active; only an explicit false marks a deactivated user.
		Active: user["active"] != false,
	}

	if email, ok := user["emailAddress"].(string); ok {
		normalized.EmailAddress = email
	}

	if avatars, ok := user["avatarUrls"].(map[string]interface{}); ok {
		urls := make(map[string]string, len(avatars))
		for size, raw := range avatars {
			if u, ok := raw.(string); ok {
				urls[size] = u
			}
		}
		normalized.AvatarURLs = urls
	}

	if deployment == DeploymentCloud {
		if accountType, ok := user["accountType"].(string); ok {
			normalized.AccountType = accountType
		}
	}

	return normalized
}

// UserLookupQuery builds the query parameters for looking up a user by its
// canonical identifier.
func UserLookupQuery(identifier string, deployment DeploymentType) map[string]string {
	if deployment == DeploymentCloud {
		return map[string]string{"accountId": identifier}
	}
	return map[string]string{"username": identifier}
}

// FormatUserForAssignment builds the request payload that assigns an issue to
// a user. Assignment payloads use name on Server/DC where lookups use
// username.
func FormatUserForAssignment(identifier string, deployment DeploymentType) map[string]string {
	if deployment == DeploymentCloud {
		return map[string]string{"accountId": identifier}
	}
	return map[string]string{"name": identifier}
}

// ValidateUserIdentifier sanity-checks an identifier before it is sent to the
// API. The Cloud rule is a heuristic on the observed accountId shape, not a
// full specification of Atlassian's format.
func ValidateUserIdentifier(identifier string, deployment DeploymentType) error {
	if identifier == "" {
		return NewValidationError("user identifier must be a non-empty string")
	}

	if deployment == DeploymentCloud {
		if len(identifier) < 10 {
			return NewValidationError("cloud accountId appears too short")
		}
		if !cloudAccountIDPattern.MatchString(identifier) {
			return NewValidationError("cloud accountId should be alphanumeric")
		}
		return nil
	}

	if !serverUsernamePattern.MatchString(identifier) {
		return NewValidationError("server username contains invalid characters")
	}
	return nil
}

// ExtractUserFromResponse pulls the primary user identifier out of common API
// response shapes: a wrapped user, assignee or reporter field, or a direct
// user object.
func ExtractUserFromResponse(response map[string]interface{}, deployment DeploymentType) (string, bool) {
	if response == nil {
		return "", false
	}

	for _, field := range []string{"user", "assignee", "reporter"} {
		if wrapped, ok := response[field].(map[string]interface{}); ok {
			return UserIdentifier(wrapped, deployment)
		}
	}

	return UserIdentifier(response, deployment)
}

// NormalizeUserList normalizes a batch of raw user objects, silently dropping
// entries with no extractable identifier. A partial list is more useful to
// callers than a hard failure on one malformed entry.
func NormalizeUserList(users []map[string]interface{}, deployment DeploymentType, logger arbor.ILogger) []*NormalizedUser {
	normalized := make([]*NormalizedUser, 0, len(users))
	for _, user := range users {
		if n := NormalizeUser(user, deployment); n != nil {
			normalized = append(normalized, n)
		}
	}

	if dropped := len(users) - len(normalized); dropped > 0 && logger != nil {
		logger.Debug().
			Int("dropped", dropped).
			Int("normalized", len(normalized)).
			Str("deployment", string(deployment)).
			Msg("Dropped users with no usable identifier during normalization")
	}

	return normalized
}
