package student

// seedEntries - встроенный набор, который используется, когда файла
// с данными нет или его не удалось прочитать.
var seedEntries = []Entry{
	{"Иванов Иван Иванович", Record{Group: "ТВ-101", College: "Технический колледж", AdmissionYear: 2023, Course: 2}},
	{"Петрова Анна Сергеевна", Record{Group: "ИС-102", College: "Колледж информационных систем", AdmissionYear: 2022, Course: 3}},
	{"Сидоров Алексей Петрович", Record{Group: "ЭК-103", College: "Экономический колледж", AdmissionYear: 2023, Course: 2}},
	{"Козлова Мария Дмитриевна", Record{Group: "ДЗ-104", College: "Колледж дизайна", AdmissionYear: 2024, Course: 1}},
	{"Николаев Денис Сергеевич", Record{Group: "МТ-105", College: "Механико-технологический колледж", AdmissionYear: 2022, Course: 3}},
}

// SeedRoster возвращает новую копию встроенного набора из пяти студентов.
func SeedRoster() *Roster {
	r := NewRoster()
	for _, e := range seedEntries {
		_ = r.Add(e.Name, e.Record)
	}
	return r
}
