package handler

import (
	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
	"github.com/jiet-alumni/alumni-directory/internal/core/ports"
)

// --- Request → Service input ---

func toAlumniInput(req alumniRequest) ports.AlumniInput {
	return ports.AlumniInput{
		Name:        req.Name,
		RollNumber:  req.RollNumber,
		Email:       req.Email,
		Phone:       string(req.Phone),
		Batch:       string(req.Batch),
		Department:  req.Department,
		Company:     req.Company,
		Designation: req.Designation,
		LinkedIn:    req.LinkedIn,
		Notes:       req.Notes,
		Role:        req.Role,
	}
}

// --- Service result → HTTP response ---

func toAlumniResponse(a *domain.Alumni) alumniResponse {
	return alumniResponse{
		ID:          a.ID,
		Name:        a.Name,
		RollNumber:  a.RollNumber,
		Email:       a.Email,
		Phone:       a.Phone,
		Batch:       a.Batch,
		Department:  a.Department,
		Company:     a.Company,
		Designation: a.Designation,
		LinkedIn:    a.LinkedIn,
		Notes:       a.Notes,
		Role:        a.Role,
		CreatedAt:   a.CreatedAt.UTC(),
		UpdatedAt:   a.UpdatedAt.UTC(),
	}
}

func toAlumniListResponse(p *ports.AlumniPage) alumniListResponse {
	items := make([]alumniResponse, 0, len(p.Items))
	for _, a := range p.Items {
		items = append(items, toAlumniResponse(a))
	}
	return alumniListResponse{Total: p.Total, Page: p.Page, Limit: p.Limit, Items: items}
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{
		User: authUser{
			ID:    r.User.ID,
			Name:  r.User.Name,
			Email: r.User.Email,
			Role:  r.User.Role,
		},
		Token: r.Token,
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
