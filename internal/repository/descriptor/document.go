package descriptor

import (
	domain "github.com/oshokin/variant-resolver/internal/domain/variant"
)

// document is the wire shape of a descriptor.
type document struct {
	Variant      string       `yaml:"variant"`
	Application  application  `yaml:"application"`
	Sdk          sdk          `yaml:"sdk"`
	Signing      *signing     `yaml:"signing"`
	Optimization optimization `yaml:"optimization"`
	Toolchain    toolchain    `yaml:"toolchain"`
}

type application struct {
	ID          string `yaml:"id"`
	Namespace   string `yaml:"namespace"`
	Name        string `yaml:"name"`
	VersionCode int    `yaml:"version_code"`
	VersionName string `yaml:"version_name"`
}

type sdk struct {
	Min     int `yaml:"min"`
	Target  int `yaml:"target"`
	Compile int `yaml:"compile"`
}

type signing struct {
	KeyAlias      string `yaml:"key_alias"`
	KeyPassword   string `yaml:"key_password"`
	StoreFile     string `yaml:"store_file"`
	StorePassword string `yaml:"store_password"`
}

type optimization struct {
	MinifyEnabled   bool     `yaml:"minify_enabled"`
	ShrinkResources bool     `yaml:"shrink_resources"`
	Debuggable      bool     `yaml:"debuggable"`
	ProguardFiles   []string `yaml:"proguard_files"`
}

type toolchain struct {
	NdkVersion                    string     `yaml:"ndk_version"`
	JavaVersion                   string     `yaml:"java_version"`
	MultiDex                      bool       `yaml:"multidex"`
	TestInstrumentationRunner     string     `yaml:"test_instrumentation_runner"`
	VectorDrawablesSupportLibrary bool       `yaml:"vector_drawables_support_library"`
	ResValues                     []resValue `yaml:"res_values"`
}

type resValue struct {
	Type  string `yaml:"type"`
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// fromDomain converts a descriptor into its wire shape.
func fromDomain(d *domain.Descriptor) *document {
	var sig *signing
	if d.Signing != nil {
		sig = &signing{
			KeyAlias:      d.Signing.KeyAlias,
			KeyPassword:   d.Signing.KeyPassword,
			StoreFile:     d.Signing.StoreFile,
			StorePassword: d.Signing.StorePassword,
		}
	}

	resValues := make([]resValue, 0, len(d.Toolchain.ResValues))
	for _, rv := range d.Toolchain.ResValues {
		resValues = append(resValues, resValue(rv))
	}

	proguardFiles := make([]string, 0, len(d.Optimization.ProguardFiles))
	proguardFiles = append(proguardFiles, d.Optimization.ProguardFiles...)

	return &document{
		Variant: d.Variant.String(),
		Application: application{
			ID:          d.Identity.ID,
			Namespace:   d.Identity.Namespace,
			Name:        d.Identity.Name,
			VersionCode: d.Identity.VersionCode,
			VersionName: d.Identity.VersionName,
		},
		Sdk: sdk{
			Min:     d.Sdk.Min,
			Target:  d.Sdk.Target,
			Compile: d.Sdk.Compile,
		},
		Signing: sig,
		Optimization: optimization{
			MinifyEnabled:   d.Optimization.MinifyEnabled,
			ShrinkResources: d.Optimization.ShrinkResources,
			Debuggable:      d.Optimization.Debuggable,
			ProguardFiles:   proguardFiles,
		},
		Toolchain: toolchain{
			NdkVersion:                    d.Toolchain.NdkVersion,
			JavaVersion:                   d.Toolchain.JavaVersion,
			MultiDex:                      d.Toolchain.MultiDex,
			TestInstrumentationRunner:     d.Toolchain.TestInstrumentationRunner,
			VectorDrawablesSupportLibrary: d.Toolchain.VectorDrawablesSupportLibrary,
			ResValues:                     resValues,
		},
	}
}

// toMap converts the document into generic values accepted by structpb.
func (doc *document) toMap() map[string]any {
	var sig any
	if doc.Signing != nil {
		sig = map[string]any{
			"key_alias":      doc.Signing.KeyAlias,
			"key_password":   doc.Signing.KeyPassword,
			"store_file":     doc.Signing.StoreFile,
			"store_password": doc.Signing.StorePassword,
		}
	}

	proguardFiles := make([]any, 0, len(doc.Optimization.ProguardFiles))
	for _, f := range doc.Optimization.ProguardFiles {
		proguardFiles = append(proguardFiles, f)
	}

	resValues := make([]any, 0, len(doc.Toolchain.ResValues))
	for _, rv := range doc.Toolchain.ResValues {
		resValues = append(resValues, map[string]any{
			"type":  rv.Type,
			"name":  rv.Name,
			"value": rv.Value,
		})
	}

	return map[string]any{
		"variant": doc.Variant,
		"application": map[string]any{
			"id":           doc.Application.ID,
			"namespace":    doc.Application.Namespace,
			"name":         doc.Application.Name,
			"version_code": doc.Application.VersionCode,
			"version_name": doc.Application.VersionName,
		},
		"sdk": map[string]any{
			"min":     doc.Sdk.Min,
			"target":  doc.Sdk.Target,
			"compile": doc.Sdk.Compile,
		},
		"signing": sig,
		"optimization": map[string]any{
			"minify_enabled":   doc.Optimization.MinifyEnabled,
			"shrink_resources": doc.Optimization.ShrinkResources,
			"debuggable":       doc.Optimization.Debuggable,
			"proguard_files":   proguardFiles,
		},
		"toolchain": map[string]any{
			"ndk_version":                      doc.Toolchain.NdkVersion,
			"java_version":                     doc.Toolchain.JavaVersion,
			"multidex":                         doc.Toolchain.MultiDex,
			"test_instrumentation_runner":      doc.Toolchain.TestInstrumentationRunner,
			"vector_drawables_support_library": doc.Toolchain.VectorDrawablesSupportLibrary,
			"res_values":                       resValues,
		},
	}
}
