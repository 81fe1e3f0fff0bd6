package models

// View wrappers add the derived fields API responses carry on top of the raw
// rows: display month names and the names of related records. The embedded
// struct keeps its own json tags, so a view marshals as one flat object.

type StationView struct {
	*Station
	AfssDueMonthName      string `json:"afss_due_month_name"`
	TenantFscDueMonthName string `json:"tenant_fsc_due_month_name"`
	InspectionMonthName   string `json:"inspection_month_name"`
	TenantCount           int    `json:"tenant_count"`
}

func NewStationView(s *Station, tenantCount int) StationView {
	return StationView{
		Station:               s,
		AfssDueMonthName:      MonthName(s.AfssDueMonth),
		TenantFscDueMonthName: MonthName(s.TenantFscDueMonth),
		InspectionMonthName:   MonthName(s.InspectionMonth),
		TenantCount:           tenantCount,
	}
}

type TenantView struct {
	*Tenant
	StationName     string `json:"station_name"`
	AfssMonthName   string `json:"afss_month_name"`
	FscDueMonthName string `json:"fsc_due_month_name"`
}

func NewTenantView(t *Tenant) TenantView {
	stationName := ""
	if t.Station != nil {
		stationName = t.Station.Name
	}
	return TenantView{
		Tenant:          t,
		StationName:     stationName,
		AfssMonthName:   MonthName(t.AfssMonth),
		FscDueMonthName: MonthName(t.FscDueMonth),
	}
}

func NewTenantViews(tenants []*Tenant) []TenantView {
	views := make([]TenantView, 0, len(tenants))
	for _, t := range tenants {
		views = append(views, NewTenantView(t))
	}
	return views
}

type DefectView struct {
	*Defect
	StationName string `json:"station_name"`
	TenantName  string `json:"tenant_name"`
}

func NewDefectView(d *Defect) DefectView {
	view := DefectView{Defect: d}
	if d.Station != nil {
		view.StationName = d.Station.Name
	}
	if d.Tenant != nil {
		view.TenantName = d.Tenant.TenantName
	}
	return view
}

func NewDefectViews(defects []*Defect) []DefectView {
	views := make([]DefectView, 0, len(defects))
	for _, d := range defects {
		views = append(views, NewDefectView(d))
	}
	return views
}
