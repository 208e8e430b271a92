package vm

import (
	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/propmap"
	"github.com/avm2/avm2/registry"
)

// SystemPrototypes is the sentinel table of built-in .prototype objects,
// populated once by bootstrap (spec §4.9) and never mutated afterward.
type SystemPrototypes struct {
	Object   *Object
	Function *Object
	Class    *Object
	Array    *Object
	Error    *Object
}

// SystemClasses is the sentinel table of built-in ClassObjects, the
// counterpart to SystemPrototypes (spec §4.9).
type SystemClasses struct {
	Object   *Object
	Function *Object
	Class    *Object
	Array    *Object
	Error    *Object
}

var publicNS = names.NewNamespace(names.Public, "")

// bootstrap performs the seven-step circular Object/Function/Class
// realization spec §4.9 describes, breaking the mutual dependency
// (a ClassObject's Class field points at the Class ClassObject; the
// Class ClassObject's own Class field points at itself) by constructing
// every sentinel bare first and patching cross-references in afterward.
// Grounded in the teacher's runtime.Bootstrap (runtime/runtime.go), which
// performs an analogous once-guarded multi-step registration pass over
// PHP's builtin class/function/constant tables; the shape (ordered steps,
// a sentinel table populated progressively) carries over even though the
// PHP stdlib content does not (see DESIGN.md).
func (vm *VM) bootstrap() {
	// Step 1: Object.prototype, the root of every prototype chain. No
	// class assigned yet — Object the class doesn't exist yet.
	objectProto := &Object{Variant: VariantScript}

	// Step 2: Function.prototype, chained to Object.prototype.
	functionProto := &Object{Variant: VariantScript, Proto: objectProto}

	// Step 3: Class.prototype, chained to Object.prototype.
	classProto := &Object{Variant: VariantScript, Proto: objectProto}

	// Step 4: realize the Object ClassObject itself. Its Class field
	// (which ClassObject it is an instance of) cannot be filled in until
	// step 6 creates the Class ClassObject.
	objectClassTemplate := registry.NewClass(names.NewQName(publicNS, "Object"))
	objectClass := &Object{
		Variant:           VariantClass,
		ClassTemplate:     objectClassTemplate,
		InstanceTraits:    propmap.NewPropertyMap(),
		ClassTraits:       propmap.NewPropertyMap(),
		InstancePrototype: objectProto,
		Proto:             classProto,
	}
	objectProto.Class = objectClass

	// Step 5: realize the Function ClassObject, superclass Object.
	functionClassTemplate := registry.NewClass(names.NewQName(publicNS, "Function"))
	functionClassTemplate.Super = names.NewQNameMultiname(publicNS, "Object")
	functionClass := &Object{
		Variant:           VariantClass,
		ClassTemplate:     functionClassTemplate,
		InstanceTraits:    propmap.NewPropertyMap(),
		ClassTraits:       propmap.NewPropertyMap(),
		Super:             objectClass,
		InstancePrototype: functionProto,
		Proto:             classProto,
	}
	functionProto.Class = functionClass

	// Step 6: realize the Class ClassObject, superclass Object, and close
	// the circularity: every ClassObject created so far (including Class
	// itself) is an instance of Class.
	classClassTemplate := registry.NewClass(names.NewQName(publicNS, "Class"))
	classClassTemplate.Super = names.NewQNameMultiname(publicNS, "Object")
	classClass := &Object{
		Variant:           VariantClass,
		ClassTemplate:     classClassTemplate,
		InstanceTraits:    propmap.NewPropertyMap(),
		ClassTraits:       propmap.NewPropertyMap(),
		Super:             objectClass,
		InstancePrototype: classProto,
	}
	classProto.Class = classClass
	objectClass.Class = classClass
	functionClass.Class = classClass
	classClass.Class = classClass // Class is an instance of itself

	// Step 7: publish the sentinel tables. No global-scope prototype patch
	// is made: the global domain object below is created directly with
	// Object.prototype as its proto. A minimal Array/Error pair is realized the same
	// way (both are ordinary Object-derived classes once Object/Function/
	// Class exist) so the rest of the VM has a usable built-in surface
	// without requiring an external ABC load just to run a script.
	arrayProto := &Object{Variant: VariantScript, Proto: objectProto}
	arrayClassTemplate := registry.NewClass(names.NewQName(publicNS, "Array"))
	arrayClassTemplate.Super = names.NewQNameMultiname(publicNS, "Object")
	arrayClass := &Object{
		Variant:           VariantClass,
		ClassTemplate:     arrayClassTemplate,
		InstanceTraits:    propmap.NewPropertyMap(),
		ClassTraits:       propmap.NewPropertyMap(),
		Super:             objectClass,
		InstancePrototype: arrayProto,
		Proto:             classProto,
		Class:             classClass,
	}
	arrayProto.Class = arrayClass

	errorProto := &Object{Variant: VariantScript, Proto: objectProto}
	errorClassTemplate := registry.NewClass(names.NewQName(publicNS, "Error"))
	errorClassTemplate.Super = names.NewQNameMultiname(publicNS, "Object")
	errorClass := &Object{
		Variant:           VariantClass,
		ClassTemplate:     errorClassTemplate,
		InstanceTraits:    propmap.NewPropertyMap(),
		ClassTraits:       propmap.NewPropertyMap(),
		Super:             objectClass,
		InstancePrototype: errorProto,
		Proto:             classProto,
		Class:             classClass,
	}
	errorProto.Class = errorClass

	vm.Prototypes = &SystemPrototypes{
		Object:   objectProto,
		Function: functionProto,
		Class:    classProto,
		Array:    arrayProto,
		Error:    errorProto,
	}
	vm.Classes = &SystemClasses{
		Object:   objectClass,
		Function: functionClass,
		Class:    classClass,
		Array:    arrayClass,
		Error:    errorClass,
	}

	vm.globalDomainObject = &Object{Variant: VariantDomain, Proto: objectProto, Class: objectClass, Domain: vm.GlobalDomain}

	// Publish the primordials into the system domain's export table so
	// resolve_multiname/get_defined_value (spec §4.6) can find "Object",
	// "Function", "Class", "Array", and "Error" without requiring a
	// script to have declared them — they are intrinsic, not
	// ABC-declared (spec §8 scenario 1: "resolve_multiname(public
	// 'Object') yields the Object class's QName").
	vm.GlobalDomain.Export(objectClassTemplate.Name, objectClass)
	vm.GlobalDomain.Export(functionClassTemplate.Name, functionClass)
	vm.GlobalDomain.Export(classClassTemplate.Name, classClass)
	vm.GlobalDomain.Export(arrayClassTemplate.Name, arrayClass)
	vm.GlobalDomain.Export(errorClassTemplate.Name, errorClass)

	vm.installGlobalNatives()
}
