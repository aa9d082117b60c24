// Package student содержит доменную модель реестра студентов колледжей.
//
// Пакет определяет:
//
//   - Value Objects: FullName, Field
//   - Сущности: Record, Roster (упорядоченный реестр ФИО -> запись)
//   - Чистые функции: CurrentCourse, AdmissionYearPlausible, Search
//   - Интерфейс хранилища: Repository
//
// # Курс
//
// Курс никогда не берётся из хранилища как есть - он пересчитывается
// из года поступления и текущего года:
//
//	calc := NewCourseCalculator(timeutil.NewSystemClock(loc))
//	course := calc.CurrentCourse(rec.AdmissionYear) // 1..4
//
// # Поиск
//
// Поиск - вхождение подстроки без учёта регистра по одному полю
// или по всем полям сразу (совпадение в любом):
//
//	found := Search(roster, "иван", FieldAll)
//	for _, e := range found.Entries() {
//	    fmt.Println(e.Name, e.Record.Group)
//	}
//
// Результат - новый реестр; его изменение не затрагивает исходный.
package student
