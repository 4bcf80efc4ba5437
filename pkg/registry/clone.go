package registry

import "slices"

// Clone returns a deep copy of the address.
func (a *Address) Clone() *Address {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

// Clone returns a deep copy so merges never alias snapshot data.
func (i Institution) Clone() Institution {
	i.Email = slices.Clone(i.Email)
	i.Phone = slices.Clone(i.Phone)
	i.Latitude = cloneFloat(i.Latitude)
	i.Longitude = cloneFloat(i.Longitude)
	i.Address = i.Address.Clone()
	i.MailingAddress = i.MailingAddress.Clone()
	i.Identifiers = slices.Clone(i.Identifiers)
	i.MachineTags = slices.Clone(i.MachineTags)
	i.Contacts = slices.Clone(i.Contacts)
	return i
}

// Clone returns a deep copy so merges never alias snapshot data.
func (c Collection) Clone() Collection {
	c.ContentTypes = slices.Clone(c.ContentTypes)
	c.PreservationTypes = slices.Clone(c.PreservationTypes)
	c.Email = slices.Clone(c.Email)
	c.Phone = slices.Clone(c.Phone)
	c.Address = c.Address.Clone()
	c.MailingAddress = c.MailingAddress.Clone()
	c.Identifiers = slices.Clone(c.Identifiers)
	c.MachineTags = slices.Clone(c.MachineTags)
	c.Contacts = slices.Clone(c.Contacts)
	return c
}

// Clone returns a deep copy so merges never alias snapshot data.
func (p Person) Clone() Person {
	p.Email = slices.Clone(p.Email)
	p.Phone = slices.Clone(p.Phone)
	p.MailingAddress = p.MailingAddress.Clone()
	p.Identifiers = slices.Clone(p.Identifiers)
	p.MachineTags = slices.Clone(p.MachineTags)
	return p
}
