package domain

// Service услуга каталога
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           float64
	EmployeeIDs     []string // сотрудники, которые выполняют услугу
	Active          bool
}

// PackageTemplate шаблон пакета в каталоге
type PackageTemplate struct {
	ID       string
	Name     string
	Services ServiceRefs
}

// Employee сотрудник салона
type Employee struct {
	ID                  string
	Name                string
	Specialties         []string // ID услуг
	AppointmentInterval int      // шаг сетки записи в минутах, 0 = не настроен
	Active              bool
}

// HasSpecialty сотрудник выполняет услугу
func (e *Employee) HasSpecialty(serviceID string) bool {
	for _, id := range e.Specialties {
		if id == serviceID {
			return true
		}
	}
	return false
}

// HasAppointmentInterval у сотрудника настроен шаг сетки
func (e *Employee) HasAppointmentInterval() bool {
	return e.AppointmentInterval > 0
}

// Catalog каталог услуг и шаблонов пакетов
type Catalog struct {
	Services  []*Service
	Templates []*PackageTemplate
}

// ServiceByID ищет услугу по ID
func (c *Catalog) ServiceByID(id string) (*Service, bool) {
	for _, s := range c.Services {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// TemplateByID ищет шаблон пакета по ID
func (c *Catalog) TemplateByID(id string) (*PackageTemplate, bool) {
	for _, t := range c.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}
