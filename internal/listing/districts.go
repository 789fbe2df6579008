package listing

import "sort"

// Справочник штат -> районы для фильтра каталога
var districtsByState = map[string][]string{
	"Andhra Pradesh": {"Guntur", "Krishna", "Visakhapatnam", "Chittoor", "Nellore"},
	"Delhi":          {"New Delhi", "North Delhi", "South Delhi", "East Delhi", "West Delhi"},
	"Gujarat":        {"Ahmedabad", "Gandhinagar", "Surat", "Vadodara", "Rajkot"},
	"Karnataka":      {"Bengaluru Urban", "Mysuru", "Mangaluru", "Dharwad", "Belagavi"},
	"Kerala":         {"Thiruvananthapuram", "Ernakulam", "Kozhikode", "Thrissur", "Kottayam"},
	"Maharashtra":    {"Mumbai", "Pune", "Nagpur", "Nashik", "Aurangabad"},
	"Rajasthan":      {"Jaipur", "Jodhpur", "Kota", "Udaipur", "Ajmer"},
	"Tamil Nadu":     {"Chennai", "Coimbatore", "Madurai", "Tiruchirappalli", "Vellore"},
	"Telangana":      {"Hyderabad", "Warangal", "Rangareddy", "Medchal-Malkajgiri", "Karimnagar"},
	"Uttar Pradesh":  {"Lucknow", "Kanpur Nagar", "Gautam Buddha Nagar", "Prayagraj", "Varanasi"},
	"West Bengal":    {"Kolkata", "Howrah", "North 24 Parganas", "Darjeeling", "Hooghly"},
}

// States возвращает список штатов с "All States" в начале
func States() []string {
	states := make([]string, 0, len(districtsByState))
	for s := range districtsByState {
		states = append(states, s)
	}
	sort.Strings(states)
	return append([]string{AllStates}, states...)
}

// Districts возвращает районы штата с "All Districts" в начале.
// Для "All States" возвращаются районы всех штатов.
func Districts(state string) []string {
	if isAll(state, AllStates) {
		var all []string
		for _, ds := range districtsByState {
			all = append(all, ds...)
		}
		sort.Strings(all)
		return append([]string{AllDistricts}, all...)
	}
	ds, ok := districtsByState[state]
	if !ok {
		return []string{AllDistricts}
	}
	return append([]string{AllDistricts}, ds...)
}

// ValidDistrict проверяет, относится ли район к штату
func ValidDistrict(state, district string) bool {
	for _, d := range Districts(state) {
		if d == district {
			return true
		}
	}
	return false
}

// Statuses - значения фасета статуса
func Statuses() []string {
	return []string{AllStatuses, "Upcoming", "Ongoing", "Completed"}
}
