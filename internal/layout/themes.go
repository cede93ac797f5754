package layout

import "github.com/abdellahzou/HiResume/internal/types"

var themes = map[types.TemplateID]Theme{
	types.TemplateModern: {
		Template: types.TemplateModern, Family: Sans,
		Accent: "#0f172a", Ink: "#1e293b", Muted: "#475569",
		PagePad: 40, HeaderAlign: "left", NameSize: 34, TitleSize: 19, ContactSep: "  ·  ",
		HeadingSize: 17, HeadingRule: true, HeadingUpper: true, HeadingAlign: "left", BodySize: 13,
		SkillChips: true, DatesInline: true,
		SectionGap: 28, EntryGap: 20,
	},
	types.TemplateClassic: {
		Template: types.TemplateClassic, Family: Serif,
		Accent: "#000000", Ink: "#0f172a", Muted: "#334155",
		PagePad: 48, HeaderAlign: "center", NameSize: 29, TitleSize: 15, ContactSep: " • ",
		HeadingSize: 13, HeadingRule: true, HeadingUpper: true, HeadingAlign: "center", BodySize: 13,
		DatesInline: true,
		SectionGap: 22, EntryGap: 14,
	},
	types.TemplateMinimal: {
		Template: types.TemplateMinimal, Family: Sans,
		Accent: "#111827", Ink: "#1f2937", Muted: "#6b7280",
		PagePad: 48, HeaderAlign: "left", NameSize: 30, TitleSize: 16, ContactSep: " / ",
		HeadingSize: 12, HeadingUpper: true, HeadingAlign: "left", BodySize: 13,
		SidebarWidth: 1.0 / 3, SidebarFill: "#ffffff",
		SectionGap: 26, EntryGap: 18,
	},
	types.TemplateProfessional: {
		Template: types.TemplateProfessional, Family: Sans,
		Accent: "#1e3a8a", Ink: "#1e293b", Muted: "#475569",
		PagePad: 64, HeaderAlign: "left", NameSize: 32, TitleSize: 18, ContactSep: " | ",
		HeadingSize: 14, HeadingRule: true, HeadingUpper: true, HeadingAlign: "left", BodySize: 13,
		SkillChips: true, DatesInline: true, Bullets: true,
		SidebarWidth: 1.0 / 3, SidebarFill: "#f1f5f9",
		SectionGap: 24, EntryGap: 16,
	},
	types.TemplateCreative: {
		Template: types.TemplateCreative, Family: Sans,
		Accent: "#0f172a", Ink: "#1e293b", Muted: "#64748b",
		PagePad: 40, HeaderAlign: "left", HeaderBand: true, NameSize: 38, TitleSize: 20, ContactSep: "   ",
		HeadingSize: 19, HeadingAlign: "left", BodySize: 13,
		SkillChips: true,
		SectionGap: 36, EntryGap: 26,
	},
	types.TemplateExecutive: {
		Template: types.TemplateExecutive, Family: Serif,
		Accent: "#1e293b", Ink: "#1e293b", Muted: "#64748b",
		PagePad: 48, HeaderAlign: "left", NameSize: 40, TitleSize: 20, ContactSep: "  |  ",
		HeadingSize: 13, HeadingUpper: true, HeadingAlign: "left", BodySize: 14,
		DatesInline: true, Bullets: true, TopRule: 8,
		SectionGap: 32, EntryGap: 22,
	},
}

// Themes returns a copy of the theme of every template.
func Themes() []Theme {
	out := make([]Theme, 0, len(themes))
	for _, id := range types.AllTemplates() {
		out = append(out, themes[id])
	}
	return out
}
