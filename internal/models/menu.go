package models

// Capabilities attached to menu entries.
const (
	CapabilityView   = "view"
	CapabilityManage = "manage"
)

// MenuEntry is one item of the dashboard navigation.
type MenuEntry struct {
	Name       string `json:"name"`
	Href       string `json:"href"`
	Capability string `json:"capability"`
}
