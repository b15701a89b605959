// Package refdata serves the static pick lists used by profile and gig forms.
package refdata

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindUniversities Kind = "universities"
	KindSkills       Kind = "skills"
	KindLanguages    Kind = "languages"
)

const DefaultLimit = 10

var ErrUnknownKind = errors.New("unknown reference list")

var lists = map[Kind][]string{
	KindUniversities: universities,
	KindSkills:       skills,
	KindLanguages:    languages,
}

// Search returns the entries of kind containing query, case-insensitively, in
// list order. An empty query matches everything. limit <= 0 means DefaultLimit.
func Search(kind Kind, query string, limit int) ([]string, error) {
	list, ok := lists[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]string, 0, min(limit, len(list)))
	for _, item := range list {
		if len(out) == limit {
			break
		}
		if q == "" || strings.Contains(strings.ToLower(item), q) {
			out = append(out, item)
		}
	}
	return out, nil
}

var universities = []string{
	"Universitas Indonesia",
	"Institut Teknologi Bandung",
	"Universitas Gadjah Mada",
	"Institut Pertanian Bogor",
	"Institut Teknologi Sepuluh Nopember",
	"Universitas Airlangga",
	"Universitas Padjadjaran",
	"Universitas Diponegoro",
	"Universitas Brawijaya",
	"Universitas Hasanuddin",
	"Universitas Sebelas Maret",
	"Universitas Sumatera Utara",
	"Universitas Andalas",
	"Universitas Negeri Yogyakarta",
	"Universitas Pendidikan Indonesia",
	"Universitas Negeri Jakarta",
	"Universitas Negeri Malang",
	"Universitas Negeri Semarang",
	"Universitas Udayana",
	"Universitas Sriwijaya",
	"Universitas Syiah Kuala",
	"Universitas Lampung",
	"Universitas Jember",
	"Universitas Mulawarman",
	"Universitas Tanjungpura",
	"Universitas Islam Indonesia",
	"Universitas Muhammadiyah Yogyakarta",
	"Universitas Bina Nusantara",
	"Universitas Telkom",
	"Universitas Trisakti",
	"Universitas Atma Jaya Yogyakarta",
	"Universitas Kristen Petra",
	"Universitas Pelita Harapan",
	"Universitas Terbuka",
}

var skills = []string{
	"Academic Writing",
	"Copywriting",
	"Content Writing",
	"Translation",
	"Proofreading",
	"Data Analysis",
	"Data Entry",
	"Statistics",
	"SPSS",
	"Microsoft Excel",
	"Microsoft PowerPoint",
	"Graphic Design",
	"Logo Design",
	"UI/UX Design",
	"Illustration",
	"Video Editing",
	"Motion Graphics",
	"Photography",
	"Web Development",
	"Mobile Development",
	"Frontend Development",
	"Backend Development",
	"Go",
	"Python",
	"JavaScript",
	"TypeScript",
	"PHP",
	"Laravel",
	"React",
	"Flutter",
	"SQL",
	"Machine Learning",
	"Digital Marketing",
	"Social Media Management",
	"SEO",
	"Accounting",
	"Tutoring",
}

var languages = []string{
	"Bahasa Indonesia",
	"English",
	"Javanese",
	"Sundanese",
	"Malay",
	"Arabic",
	"Mandarin Chinese",
	"Cantonese",
	"Japanese",
	"Korean",
	"German",
	"French",
	"Spanish",
	"Portuguese",
	"Italian",
	"Dutch",
	"Russian",
	"Hindi",
	"Thai",
	"Vietnamese",
	"Tagalog",
	"Turkish",
}
