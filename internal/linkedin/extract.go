// extract.go -- Defensive field extraction from LinkedIn v2 API payloads.
//
// LinkedIn nests the interesting values several levels deep and keys some of
// them by locale. Every extractor here fails fast with ErrMalformedProfile
// rather than guessing at alternate keys.
package linkedin

import (
	"fmt"
	"strings"
)

// photoArtifactMarker identifies the 400x400 rendition among the playable
// photo streams. Artifact URNs embed the rendition class name.
const photoArtifactMarker = "profile-displayphoto-shrink_400_400"

// localizedName is LinkedIn's shape for firstName/lastName: a map of
// "language_COUNTRY" keys plus the member's declared preferred locale.
type localizedName struct {
	Localized       map[string]string `json:"localized"`
	PreferredLocale struct {
		Country  string `json:"country"`
		Language string `json:"language"`
	} `json:"preferredLocale"`
}

// meResponse is the identity resource (GET /v2/me).
type meResponse struct {
	ID        string         `json:"id"`
	FirstName *localizedName `json:"firstName"`
	LastName  *localizedName `json:"lastName"`
}

// emailResponse is the members/elements envelope returned by the
// emailAddress resource.
type emailResponse struct {
	Elements []struct {
		Handle *struct {
			EmailAddress string `json:"emailAddress"`
		} `json:"handle~"`
	} `json:"elements"`
}

// photoResponse is the playable-streams projection of the identity resource.
type photoResponse struct {
	ProfilePicture struct {
		DisplayImage struct {
			Elements []photoVariant `json:"elements"`
		} `json:"displayImage~"`
	} `json:"profilePicture"`
}

// photoVariant is one rendition of the profile photo at a fixed pixel size.
type photoVariant struct {
	Artifact    string `json:"artifact"`
	Identifiers []struct {
		Identifier string `json:"identifier"`
	} `json:"identifiers"`
}

// fullName resolves firstName and lastName through the preferred locale and
// joins them with a single space. A missing name field or a localized map
// without the exact preferred-locale key is ErrMalformedProfile -- no
// fallback locale is attempted.
func fullName(me *meResponse) (string, error) {
	first, err := localizedValue(me.FirstName, "firstName")
	if err != nil {
		return "", err
	}
	last, err := localizedValue(me.LastName, "lastName")
	if err != nil {
		return "", err
	}
	return first + " " + last, nil
}

// localizedValue picks the entry matching the field's own preferred locale.
func localizedValue(n *localizedName, field string) (string, error) {
	if n == nil {
		return "", fmt.Errorf("%w: missing %s", ErrMalformedProfile, field)
	}
	key := n.PreferredLocale.Language + "_" + n.PreferredLocale.Country
	v, ok := n.Localized[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s has no %q entry", ErrMalformedProfile, field, key)
	}
	return v, nil
}

// emailAddress extracts the first element's handle~.emailAddress.
// Any absent intermediate is ErrMalformedProfile.
func emailAddress(env *emailResponse) (string, error) {
	if len(env.Elements) == 0 {
		return "", fmt.Errorf("%w: email envelope has no elements", ErrMalformedProfile)
	}
	handle := env.Elements[0].Handle
	if handle == nil {
		return "", fmt.Errorf("%w: email element missing handle~", ErrMalformedProfile)
	}
	if handle.EmailAddress == "" {
		return "", fmt.Errorf("%w: email handle missing emailAddress", ErrMalformedProfile)
	}
	return handle.EmailAddress, nil
}

// photoURL returns the identifier URL of the first variant whose artifact
// contains the 400x400 marker. An exhausted list is not an error -- the
// account simply gets no photo. A matching variant without an identifier
// URL is malformed.
func photoURL(resp *photoResponse) (string, error) {
	for _, v := range resp.ProfilePicture.DisplayImage.Elements {
		if !strings.Contains(v.Artifact, photoArtifactMarker) {
			continue
		}
		if len(v.Identifiers) == 0 || v.Identifiers[0].Identifier == "" {
			return "", fmt.Errorf("%w: photo variant has no identifier", ErrMalformedProfile)
		}
		return v.Identifiers[0].Identifier, nil
	}
	return "", nil
}
