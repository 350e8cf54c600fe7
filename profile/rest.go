package profile

import (
	"strconv"
	"time"

	"datemate/match"
)

// RestProfile is the JSON:API representation of a stored profile
type RestProfile struct {
	Id           uint32    `json:"-"`
	DatingIntent string    `json:"datingIntent"`
	Gesture      string    `json:"gesture"`
	Passion      string    `json:"passion"`
	ThreeWords   string    `json:"threeWords"`
	LoveLanguage string    `json:"loveLanguage"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r RestProfile) GetName() string {
	return "profiles"
}

func (r RestProfile) GetID() string {
	return strconv.Itoa(int(r.Id))
}

func (r *RestProfile) SetID(id string) error {
	v, err := strconv.Atoi(id)
	if err != nil {
		return err
	}
	r.Id = uint32(v)
	return nil
}

// RestMatch is a candidate profile and its similarity to the requested profile
type RestMatch struct {
	Id         uint32  `json:"-"`
	Similarity float32 `json:"similarity"`
}

func (r RestMatch) GetName() string {
	return "matches"
}

func (r RestMatch) GetID() string {
	return strconv.Itoa(int(r.Id))
}

// CreatedResponse is the plain JSON body returned for a new profile
type CreatedResponse struct {
	ProfileId uint32 `json:"profile_id"`
}

func Transform(p Profile) (RestProfile, error) {
	return RestProfile{
		Id:           p.Id(),
		DatingIntent: p.DatingIntent().String(),
		Gesture:      p.Gesture(),
		Passion:      p.Passion(),
		ThreeWords:   p.ThreeWords(),
		LoveLanguage: p.LoveLanguage().String(),
		CreatedAt:    p.CreatedAt(),
	}, nil
}

func TransformAll(ps []Profile) ([]RestProfile, error) {
	out := make([]RestProfile, 0, len(ps))
	for _, p := range ps {
		rp, err := Transform(p)
		if err != nil {
			return nil, err
		}
		out = append(out, rp)
	}
	return out, nil
}

func TransformMatches(ms []match.Match) []RestMatch {
	out := make([]RestMatch, 0, len(ms))
	for _, m := range ms {
		out = append(out, RestMatch{Id: m.ProfileId, Similarity: m.Similarity})
	}
	return out
}
