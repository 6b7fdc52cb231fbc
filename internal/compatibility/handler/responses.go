package handler

import "lahu/internal/bloodtype"

type CheckResponse struct {
	Compatible   bool   `json:"compatible"`
	Message      string `json:"message"`
	UsedFallback bool   `json:"usedFallback"`
}

type ProfileResponse struct {
	BloodType      string   `json:"bloodType"`
	CanDonateTo    []string `json:"canDonateTo"`
	CanReceiveFrom []string `json:"canReceiveFrom"`
}

func toCheckResponse(r bloodtype.Result) CheckResponse {
	return CheckResponse{
		Compatible:   r.Compatible,
		Message:      r.Message,
		UsedFallback: r.UsedFallback,
	}
}

func toProfileResponse(p bloodtype.Profile) ProfileResponse {
	return ProfileResponse{
		BloodType:      p.BloodType.String(),
		CanDonateTo:    bloodtype.Strings(p.CanDonateTo),
		CanReceiveFrom: bloodtype.Strings(p.CanReceiveFrom),
	}
}
