package packages

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// Normalize приводит купленный пакет к каноническому виду
//
// Состав и имя берутся ровно из одного источника, источники не смешиваются:
//  1. snapshot, сохраненный при покупке;
//  2. шаблон каталога по package_id;
//  3. услуги, записанные прямо в документе пакета.
func Normalize(raw *domain.ClientPackage, templates []*domain.PackageTemplate) *domain.CanonicalPackage {
	pkg := &domain.CanonicalPackage{
		ID:             raw.ID,
		ClientID:       raw.ClientID,
		PackageID:      raw.PackageID,
		History:        append([]domain.SessionHistoryEntry(nil), raw.SessionHistory...),
		Status:         raw.Status,
		ExpirationDate: raw.ExpirationDate,
	}

	// 1. Snapshot
	if raw.Snapshot != nil {
		pkg.Tier = domain.TierSnapshot
		pkg.Services = copyRefs(raw.Snapshot.Services)
		pkg.Name = firstNonEmpty(raw.Snapshot.Name, raw.Name, domain.DefaultPackageName)
		return pkg
	}

	// 2. Шаблон каталога
	if raw.PackageID != "" {
		if tpl := findTemplate(templates, raw.PackageID); tpl != nil {
			pkg.Tier = domain.TierTemplate
			pkg.Services = copyRefs(tpl.Services)
			pkg.Name = firstNonEmpty(tpl.Name, raw.Name, domain.DefaultPackageName)
			return pkg
		}
	}

	// 3. Услуги из самого документа, имя без подстановок
	pkg.Tier = domain.TierRaw
	pkg.Services = copyRefs(raw.Services)
	pkg.Name = raw.Name
	return pkg
}

func findTemplate(templates []*domain.PackageTemplate, id string) *domain.PackageTemplate {
	for _, tpl := range templates {
		if tpl != nil && tpl.ID == id {
			return tpl
		}
	}
	return nil
}

func copyRefs(refs domain.ServiceRefs) domain.ServiceRefs {
	out := make(domain.ServiceRefs, len(refs))
	copy(out, refs)
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
