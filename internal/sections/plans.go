package sections

import (
	"fmt"

	"github.com/abdellahzou/HiResume/internal/types"
)

// Plan is the fixed section order of one template. Single-column templates only use Main.
type Plan struct {
	Sidebar []Kind
	Main    []Kind
}

// TwoColumn reports whether the plan has a sidebar.
func (p Plan) TwoColumn() bool {
	return len(p.Sidebar) > 0
}

var (
	standardOrder  = []Kind{Summary, Experience, Projects, Education, Certifications, Skills, Custom}
	creativeOrder  = []Kind{Summary, Experience, Projects, Skills, Education, Certifications, Custom}
	executiveOrder = []Kind{Summary, Experience, Projects, Custom, Education, Skills, Certifications}
	sidebarOrder   = []Kind{Contact, Education, Skills, Certifications}
	mainOrder      = []Kind{Summary, Experience, Projects, Custom}

	documentFlowOrder    = []Kind{Summary, Experience, Projects, Custom, Education, Certifications, Skills}
	documentSidebarOrder = []Kind{Contact, Skills, Education, Certifications}
)

// ScreenPlan returns the on-screen section order of a template.
func ScreenPlan(id types.TemplateID) (Plan, error) {
	switch id {
	case types.TemplateModern, types.TemplateClassic:
		return Plan{Main: standardOrder}, nil
	case types.TemplateCreative:
		return Plan{Main: creativeOrder}, nil
	case types.TemplateExecutive:
		return Plan{Main: executiveOrder}, nil
	case types.TemplateProfessional, types.TemplateMinimal:
		return Plan{Sidebar: sidebarOrder, Main: mainOrder}, nil
	default:
		return Plan{}, fmt.Errorf("%w: %q", types.ErrUnknownTemplate, string(id))
	}
}

// DocumentPlan returns the section order used by the word-processor export.
func DocumentPlan(id types.TemplateID) (Plan, error) {
	if !id.Valid() {
		return Plan{}, fmt.Errorf("%w: %q", types.ErrUnknownTemplate, string(id))
	}
	if id.UsesSidebar() {
		return Plan{Sidebar: documentSidebarOrder, Main: mainOrder}, nil
	}
	return Plan{Main: documentFlowOrder}, nil
}
