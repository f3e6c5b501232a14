package criteria

import (
	"slices"
	"strings"

	"github.com/jakechorley/production-scheduler/pkg/core/allocator"
	"github.com/jakechorley/production-scheduler/pkg/core/model"
)

// RequiredSkillsCriterion only lets an operation onto work centers that list
// every skill the operation requires.
//
// Validity:
//   - Operations with no required skills are valid everywhere
//   - Skill tags compare case-insensitively
//   - A work center with no skill list is treated as having no skills
type RequiredSkillsCriterion struct{}

// NewRequiredSkillsCriterion creates a new RequiredSkillsCriterion
func NewRequiredSkillsCriterion() *RequiredSkillsCriterion {
	return &RequiredSkillsCriterion{}
}

func (c *RequiredSkillsCriterion) Name() string {
	return "RequiredSkills"
}

func (c *RequiredSkillsCriterion) IsWorkCenterValid(placement allocator.Placement, workCenter model.WorkCenterCapacity) bool {
	for _, required := range placement.Operation.RequiredSkills {
		if !slices.ContainsFunc(workCenter.Skills, func(skill string) bool {
			return strings.EqualFold(strings.TrimSpace(skill), strings.TrimSpace(required))
		}) {
			return false
		}
	}
	return true
}
