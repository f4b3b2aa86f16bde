package girder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadFromFile loads a girder definition from a YAML or JSON file, fills
// defaults and validates it
func LoadFromFile(path string) (*Girder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read girder file")
	}

	var g Girder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &g)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &g)
	default:
		return nil, errors.Errorf("unsupported girder file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", filepath.Base(path))
	}

	g.ApplyDefaults()
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

var (
	vOnce  sync.Once
	vInst  *validator.Validate
	vTrans ut.Translator
)

// validate returns the validator singleton with english messages and
// yaml tag names
func validate() (*validator.Validate, ut.Translator) {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("yaml")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vInst, vTrans = v, trans
	})
	return vInst, vTrans
}

// validateStruct runs the struct tag rules and reports the first failure
func validateStruct(g *Girder) error {
	v, trans := validate()
	err := v.Struct(g)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.TrimPrefix(fe.Namespace(), "Girder.")
		return &ValidationError{Field: field, msg: fe.Translate(trans)}
	}
	return &ValidationError{msg: err.Error()}
}
