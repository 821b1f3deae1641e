// Package forms holds the headless form model and the FormValidator that
// runs field validation over it.
//
// A Form is an ordered list of Fields, each with a current value, a
// validation.Constraint and its presentation state (whether it is marked
// invalid and the message shown next to it). The form itself carries the
// success indicator. Nothing here touches HTTP or templates; the site package
// renders whatever state a FormValidator leaves behind.
//
//	reg, _ := forms.DefaultRegistry()
//	form, _ := reg.Get("contactForm")
//
//	v := forms.NewValidator(form, forms.WithHideAfter(5*time.Second))
//	defer v.Close()
//
//	_ = v.Fill(map[string]string{"name": "Asha", "email": "asha@example.com"})
//	res := v.Submit()
//	if !res.Valid {
//	    // res.Errors.First("message") == "This field is required"
//	}
//
// # Lifecycle
//
// Blur and Change re-validate a single field. Submit validates every field in
// document order; on success it shows the success indicator, clears every
// value and schedules the indicator to hide again. Each FormValidator owns at
// most one pending hide: a new successful submit cancels the previous one and
// Close cancels whatever is left.
package forms
