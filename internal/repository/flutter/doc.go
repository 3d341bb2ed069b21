// Package flutter reads the application version declared by a Flutter project.
//
// The version comes from pubspec.yaml ("version: 1.2.3+45") and may be
// overridden by flutter.versionName / flutter.versionCode in local.properties,
// the same precedence the Flutter Gradle plugin applies.
package flutter
