// Package messages renders the bot's bilingual reply templates. The
// catalog is keyed by an explicit {field, situation} pair and validated
// at construction so a missing combination fails at startup, not midway
// through a conversation.
package messages

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nadiprasetio/catat-cuan/internal/model"
)

// Situation names the conversational moment a template serves.
type Situation string

const (
	// SituationAsk prompts for raw input for a field.
	SituationAsk Situation = "ask"
	// SituationEmpty reacts to a required field arriving empty.
	SituationEmpty Situation = "empty"
	// SituationFuzzyMatch proposes a fuzzy-matched value.
	SituationFuzzyMatch Situation = "fuzzy_match"
	// SituationFuzzyWithAlternatives proposes a value and lists runners-up.
	SituationFuzzyWithAlternatives Situation = "fuzzy_with_alternatives"
	// SituationNoMatch reports that nothing matched and lists options.
	SituationNoMatch Situation = "no_match"
	// SituationNatural confirms a parsed natural-language date.
	SituationNatural Situation = "natural"
	// SituationYearOnly confirms the year-to-December-31 reading.
	SituationYearOnly Situation = "year_only"
	// SituationFormatError reports unparseable date or amount input.
	SituationFormatError Situation = "format_error"
	// SituationBoundsError reports an out-of-range amount.
	SituationBoundsError Situation = "bounds_error"
	// SituationConfirmed acknowledges a confirmed field.
	SituationConfirmed Situation = "confirmed"
	// SituationRejected acknowledges a rejected proposal.
	SituationRejected Situation = "rejected"
	// SituationCancelled acknowledges a cancelled transaction.
	SituationCancelled Situation = "cancelled"
	// SituationComplete wraps up a finished transaction.
	SituationComplete Situation = "complete"
)

// FieldAny is the catalog's fallback key for templates shared by every
// field type.
const FieldAny model.FieldType = ""

// Key identifies one template.
type Key struct {
	Field     model.FieldType
	Situation Situation
}

// builtin is the compiled-in catalog. The strings are the product's
// voice; overrides may replace individual entries but the full required
// set must stay renderable.
var builtin = map[Key]string{
	{model.FieldTypeAccount, SituationAsk}:                    "Akun mana yang dipakai? 💳 Kasih tahu ya!",
	{model.FieldTypeAccount, SituationEmpty}:                  "Akun belum disebutkan. Coba kasih tahu akun mana yang dipakai ya!",
	{model.FieldTypeAccount, SituationFuzzyMatch}:             "Saya kira '{input}' itu akun {value}. Yuk saya bantu yakinkan!",
	{model.FieldTypeAccount, SituationFuzzyWithAlternatives}:  "Saya kira '{input}' itu akun {value}. Yuk saya bantu yakinkan!\nKalau bukan, ada pilihan lain: {alternatives}",
	{model.FieldTypeAccount, SituationNoMatch}:                "Hmm, '{input}' bukan akun yang aku kenal. Mungkin maksud Anda salah satu dari ini: {valid_options}?",
	{model.FieldTypeCategory, SituationAsk}:                   "Kategorinya apa? 🏷️\nSebutkan kategori transaksi ya. Biar saya bisa bantu track pengeluaran Anda!",
	{model.FieldTypeCategory, SituationEmpty}:                 "Harus pilih kategori dari: {categories}. Mana yang cocok?",
	{model.FieldTypeCategory, SituationFuzzyMatch}:            "Sepertinya '{input}' itu kategori {value}. Sesuai, kan?",
	{model.FieldTypeCategory, SituationFuzzyWithAlternatives}: "Sepertinya '{input}' itu kategori {value}. Sesuai, kan?\nKalau tidak, ada juga: {alternatives}",
	{model.FieldTypeCategory, SituationNoMatch}:               "Kategori '{input}' belum pernah aku temui. Pilih dari: {valid_options} ya!",
	{model.FieldTypeDate, SituationAsk}:                       "Tanggalnya kapan? 📅 Boleh 'hari ini', '25 desember', atau '2025-12-25'. Kalau dikosongkan, aku pakai hari ini.",
	{model.FieldTypeDate, SituationEmpty}:                     "Tanggal opsional - aku akan pakai hari ini kalau Anda tidak sebutkan.",
	{model.FieldTypeDate, SituationNatural}:                   "Oke, '{input}' itu {value}. Pas, kan?",
	{model.FieldTypeDate, SituationYearOnly}:                  "Saya pikir '{input}' maksudnya 31 Desember {year}. Betul?",
	{model.FieldTypeDate, SituationNoMatch}:                   "Wah, formatnya agak aneh. Coba dengan 'hari ini', '25 desember', '2025-12-25', atau tahunnya aja '2025'!",
	{model.FieldTypeDate, SituationFormatError}:               "Format tanggalnya belum tepat 🤔\nCoba dengan 'hari ini', '25 desember', atau '2025-12-25'!",
	{model.FieldTypeTransactionType, SituationAsk}:            "Jenis transaksi apa? 🤷\nIni pemasukan, pengeluaran, atau transfer? Beritahu saya!",
	{model.FieldTypeTransactionType, SituationEmpty}:          "Jenis transaksi apa? 🤷\nIni pemasukan, pengeluaran, atau transfer? Beritahu saya!",
	{model.FieldTypeTransactionType, SituationFuzzyMatch}:     "Sepertinya '{input}' maksudnya {value}. Benar, kan?",
	{model.FieldTypeTransactionType, SituationFuzzyWithAlternatives}: "Sepertinya '{input}' maksudnya {value}. Benar, kan?\nKalau bukan, mungkin: {alternatives}",
	{model.FieldTypeTransactionType, SituationNoMatch}:              "Ini pemasukan, pengeluaran, atau transfer? Beritahu saya!",
	{model.FieldTypeAmount, SituationAsk}:                           "Jumlahnya berapa? 💰 Coba dengan angka, misal '500000' atau '500 ribu'.",
	{model.FieldTypeAmount, SituationEmpty}:                         "Jumlahnya berapa? 💰 Coba dengan angka, misal '500000' atau '500 ribu'.",
	{model.FieldTypeAmount, SituationFormatError}:                   "Jumlahnya harus berupa angka 💰\nCoba lagi dengan angka aja, misal '500000' atau '500 ribu'",
	{model.FieldTypeAmount, SituationBoundsError}:                   "Jumlahnya masuk akal gak? 🤔\nJumlahnya harus positif dan max 1 miliar. Coba lagi yuk!",
	{FieldAny, SituationConfirmed}:                                  "✅ Bagus! {field} {value} sudah dikonfirmasi. Lanjut yuk!",
	{FieldAny, SituationRejected}:                                   "Oke, gak jadi pakai '{value}'.\nBeritahu saya {field} yang benar ya!",
	{FieldAny, SituationCancelled}:                                  "Oke, transaksinya aku batalkan. Kalau mau mulai lagi, tinggal bilang ya!",
	{FieldAny, SituationComplete}:                                   "🎉 Transaksi lengkap!\n{summary}\nSudah aku catat ya!",
}

// requiredKeys is the set the engine can reach; NewCatalog refuses to
// start without all of them.
var requiredKeys = func() []Key {
	keys := make([]Key, 0, len(builtin))
	for k := range builtin {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Field != keys[j].Field {
			return keys[i].Field < keys[j].Field
		}
		return keys[i].Situation < keys[j].Situation
	})
	return keys
}()

var placeholderRe = regexp.MustCompile(`\{([a-z_]+)\}`)

// Catalog is an immutable template store.
type Catalog struct {
	templates map[Key]string
}

// NewCatalog builds the catalog from the compiled-in templates and
// validates completeness.
func NewCatalog() (*Catalog, error) {
	templates := make(map[Key]string, len(builtin))
	for k, v := range builtin {
		templates[k] = v
	}
	c := &Catalog{templates: templates}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewCatalogFromFile builds the catalog and then replaces individual
// entries from a yaml override file shaped as
// field -> situation -> template text.
func NewCatalogFromFile(path string) (*Catalog, error) {
	c, err := NewCatalog()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template overrides: %w", err)
	}

	var overrides map[string]map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse template overrides: %w", err)
	}

	for field, entries := range overrides {
		for situation, text := range entries {
			key := Key{model.FieldType(field), Situation(situation)}
			if _, ok := c.templates[key]; !ok {
				return nil, fmt.Errorf("template override for unknown key %s/%s", field, situation)
			}
			c.templates[key] = text
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Render resolves a template and interpolates the named placeholders.
// A missing template combination or an unresolved placeholder is a
// programming error and fails loudly rather than leaking raw template
// text to the user.
func (c *Catalog) Render(field model.FieldType, situation Situation, vars map[string]string) (string, error) {
	template, ok := c.templates[Key{field, situation}]
	if !ok {
		template, ok = c.templates[Key{FieldAny, situation}]
	}
	if !ok {
		return "", fmt.Errorf("no template for field %q situation %q", field, situation)
	}

	var missing []string
	rendered := placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		value, ok := vars[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		return value
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("template %s/%s: unresolved placeholders: %s",
			field, situation, strings.Join(missing, ", "))
	}
	return rendered, nil
}

func (c *Catalog) validate() error {
	var missing []string
	for _, k := range requiredKeys {
		if t, ok := c.templates[k]; !ok || strings.TrimSpace(t) == "" {
			missing = append(missing, fmt.Sprintf("%s/%s", k.Field, k.Situation))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("message catalog incomplete: missing %s", strings.Join(missing, ", "))
	}
	return nil
}
