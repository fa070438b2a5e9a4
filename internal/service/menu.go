package service

import "github.com/intellixel001/suvashpanel/internal/models"

// MenuFor returns the navigation for role. Home always comes first.
func MenuFor(role models.Role) []models.MenuEntry {
	entries := []models.MenuEntry{
		{Name: "Home", Href: "/dashboard", Capability: models.CapabilityView},
	}
	switch role {
	case models.RoleStaff:
		entries = append(entries,
			models.MenuEntry{Name: "Course", Href: "/dashboard/course", Capability: models.CapabilityManage},
			models.MenuEntry{Name: "Exam", Href: "/dashboard/exam", Capability: models.CapabilityManage},
		)
	case models.RoleTeacher:
		entries = append(entries,
			models.MenuEntry{Name: "Exam", Href: "/dashboard/exam", Capability: models.CapabilityView},
			models.MenuEntry{Name: "Assignments", Href: "/dashboard/assignments", Capability: models.CapabilityView},
		)
	}
	return entries
}

// CanManageExams reports whether role may create, edit and delete exams.
func CanManageExams(role models.Role) bool {
	return role == models.RoleStaff
}
